// Package pdf renders LaTeX documents to PDF with a local pdflatex install.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

// Renderer turns a LaTeX source document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, latex string) ([]byte, error)
}

// LatexRenderer shells out to pdflatex. Each render runs in its own
// temporary directory so concurrent renders never share aux files.
type LatexRenderer struct {
	binary  string
	timeout time.Duration
}

func NewLatexRenderer() *LatexRenderer {
	return &LatexRenderer{binary: "pdflatex", timeout: 30 * time.Second}
}

func (r *LatexRenderer) Render(ctx context.Context, latex string) ([]byte, error) {
	if _, err := exec.LookPath(r.binary); err != nil {
		return nil, domain.ErrRendererUnavailable
	}

	dir, err := os.MkdirTemp("", "gyanforge-latex-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	source := filepath.Join(dir, "document.tex")
	if err := os.WriteFile(source, []byte(latex), 0o600); err != nil {
		return nil, fmt.Errorf("write source: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary,
		"-interaction=nonstopmode", "-halt-on-error",
		"-output-directory", dir, source)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdflatex: %w: %s", err, lastLines(string(out), 5))
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "document.pdf"))
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	return pdf, nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// NotesDocument wraps lesson notes in a printable LaTeX article. The lesson
// body is markdown, so markup characters are escaped rather than interpreted.
func NotesDocument(lesson domain.LessonContent) string {
	var sb strings.Builder
	sb.WriteString(`\documentclass{article}
\usepackage[utf8]{inputenc}
\usepackage[margin=1in]{geometry}
\usepackage{parskip}
`)
	fmt.Fprintf(&sb, "\\title{%s}\n", escapeLatex(lesson.Title))
	sb.WriteString(`\date{}
\begin{document}
\maketitle
`)
	fmt.Fprintf(&sb, "\\section*{Overview}\n%s\n\n", escapeLatex(lesson.Description))
	fmt.Fprintf(&sb, "\\section*{Notes}\n%s\n\n", escapeLatex(lesson.Body))
	if len(lesson.Prerequisites) > 0 {
		sb.WriteString("\\section*{Prerequisites}\n\\begin{itemize}\n")
		for _, p := range lesson.Prerequisites {
			fmt.Fprintf(&sb, "\\item %s\n", escapeLatex(p))
		}
		sb.WriteString("\\end{itemize}\n")
	}
	sb.WriteString("\\end{document}\n")
	return sb.String()
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func escapeLatex(s string) string {
	return latexEscaper.Replace(s)
}
