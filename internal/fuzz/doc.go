// Package fuzztests holds the fuzz targets for the reader: the scanner on raw
// bytes and the parser on raw text. Seeds are built in and also taken from
// the repository testdata.
//
//	go test ./internal/fuzz -fuzz FuzzParserNoHang
package fuzztests
