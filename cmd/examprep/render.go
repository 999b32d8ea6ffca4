package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/examprep/internal/config"
	"github.com/xxxsen/examprep/internal/document"
	"github.com/xxxsen/examprep/internal/filestore"
	"github.com/xxxsen/examprep/internal/model"
	"github.com/xxxsen/examprep/internal/render"
	"github.com/xxxsen/examprep/internal/service"
)

type renderOptions struct {
	configPath  string
	notesPath   string
	mindMapPath string
	mindMapKind string
	subject     string
	code        string
	scope       string
	format      string
	out         string
}

// newRenderCmd exports a notes file offline with the same assembler the
// server uses.
func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render a notes markdown file to pdf, html or markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "optional config.json for rasterizer and staging settings")
	f.StringVar(&opts.notesPath, "notes", "", "notes markdown file")
	f.StringVar(&opts.mindMapPath, "mindmap", "", "mind map markup or tree json file")
	f.StringVar(&opts.mindMapKind, "mindmap-kind", "", "diagram or tree, detected when empty")
	f.StringVar(&opts.subject, "subject", "Study Notes", "subject name")
	f.StringVar(&opts.code, "code", "", "subject code")
	f.StringVar(&opts.scope, "scope", "semester", "exam scope")
	f.StringVar(&opts.format, "format", "pdf", "pdf, html or markdown")
	f.StringVar(&opts.out, "out", "", "output file, derived from the subject when empty")
	_ = cmd.MarkFlagRequired("notes")
	return cmd
}

func runRender(ctx context.Context, opts *renderOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	notes, err := os.ReadFile(opts.notesPath)
	if err != nil {
		return fmt.Errorf("read notes: %w", err)
	}
	rcfg := render.Config{}
	staging := filestore.Config{Type: "local", Data: map[string]interface{}{"dir": filepath.Join(os.TempDir(), "examprep-staging")}}
	mermaidScript := ""
	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		rcfg, staging, mermaidScript = cfg.Rasterizer, cfg.Staging, cfg.MermaidScript
	}
	store, err := filestore.New(staging)
	if err != nil {
		return fmt.Errorf("init staging store: %w", err)
	}
	assembler, err := buildAssembler(rcfg, store)
	if err != nil {
		return err
	}

	req := service.ExportRequest{
		Notes:       string(notes),
		SubjectName: opts.subject,
		SubjectCode: opts.code,
		ExamType:    opts.scope,
		MindMapKind: opts.mindMapKind,
	}
	if opts.mindMapPath != "" {
		raw, err := os.ReadFile(opts.mindMapPath)
		if err != nil {
			return fmt.Errorf("read mind map: %w", err)
		}
		mm, ok := model.ParseMindMap(string(raw), model.MindMapKind(opts.mindMapKind))
		if !ok {
			return fmt.Errorf("mind map file %s is not usable", opts.mindMapPath)
		}
		if req.MindMap, err = json.Marshal(mm); err != nil {
			return err
		}
	}

	svc := service.NewExportService(assembler, document.HTMLOptions{MermaidScript: mermaidScript})
	doc, err := svc.Notes(ctx, req, opts.format)
	if err != nil {
		return err
	}
	out := opts.out
	if out == "" {
		out = doc.Filename
	}
	if err := os.WriteFile(out, doc.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logutil.GetLogger(ctx).Info("document rendered", zap.String("out", out), zap.Int("bytes", len(doc.Data)))
	return nil
}
