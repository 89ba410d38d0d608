package driver

import (
	"risp/internal/diag"
	"risp/internal/project"
	"risp/internal/source"
)

// diskCacheSchemaVersion changes whenever DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskPayload is what a cache hit restores: counts and diagnostics. Trees
// are never stored.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ContentHash project.Digest // the cache key, see cacheKey
	Forms       int
	Nodes       int
	Diagnostics []CachedDiagnostic
	Broken      bool // any error among Diagnostics
}

// CachedDiagnostic drops the file id, which differs between runs.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Line     uint32
	Col      uint32
	Notes    []CachedNote
}

type CachedNote struct {
	Line uint32
	Col  uint32
	Msg  string
}

// payloadFromParse snapshots res. Timing entries are left out: they
// describe one run, not the content.
func payloadFromParse(path string, key project.Digest, res *ParseResult) *DiskPayload {
	p := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		ContentHash: key,
		Forms:       res.Forms(),
		Broken:      res.Bag.HasErrors(),
	}
	if res.Tree != nil {
		p.Nodes = res.Tree.Len()
	}
	for _, d := range res.Bag.Items() {
		if d.Code != diag.ObsTimings {
			p.Diagnostics = append(p.Diagnostics, cacheDiagnostic(d))
		}
	}
	return p
}

func cacheDiagnostic(d diag.Diagnostic) CachedDiagnostic {
	cd := CachedDiagnostic{
		Severity: uint8(d.Severity),
		Code:     uint16(d.Code),
		Message:  d.Message,
		Line:     d.Primary.Line,
		Col:      d.Primary.Col,
	}
	for _, n := range d.Notes {
		cd.Notes = append(cd.Notes, CachedNote{Line: n.At.Line, Col: n.At.Col, Msg: n.Msg})
	}
	return cd
}

// replay adds the cached diagnostics to bag as if file had been parsed.
func (p *DiskPayload) replay(bag *diag.Bag, file source.FileID) {
	at := func(line, col uint32) source.Info { return source.Info{File: file, Line: line, Col: col} }
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), at(cd.Line, cd.Col), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(at(n.Line, n.Col), n.Msg)
		}
		bag.Add(d)
	}
}
