package lexer

import (
	"risp/internal/diag"
	"risp/internal/source"
	"risp/internal/trace"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем сканировать)
	Tracer   trace.Tracer  // nil means trace.Nop
}

func (s *Scanner) report(code diag.Code, at source.Info, msg string) {
	if s.opts.Reporter != nil {
		s.opts.Reporter.Report(code, diag.SevError, at, msg, nil)
	}
}
