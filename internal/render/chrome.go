package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	defaultScriptURL      = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"
	defaultSettle         = 3 * time.Second
	defaultTimeout        = 30 * time.Second
	defaultViewportWidth  = 1600
	defaultViewportHeight = 1200
	defaultScale          = 2
	defaultMaxConcurrency = 2
)

const shellTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { margin: 0; padding: 24px; background: #ffffff; font-family: Arial, sans-serif; }
.mermaid { display: inline-block; }
</style>
<script src="%s"></script>
</head>
<body>
<pre class="mermaid">%s</pre>
<script>mermaid.initialize({ startOnLoad: true, theme: "default" });</script>
</body>
</html>`

// ChromeRasterizer starts an isolated headless browser per call and
// screenshots the rendered diagram element.
type ChromeRasterizer struct {
	execPath  string
	scriptURL string
	settle    time.Duration
	timeout   time.Duration
	width     int64
	height    int64
	scale     float64
	sem       *semaphore.Weighted
}

func NewChromeRasterizer(cfg Config) *ChromeRasterizer {
	r := &ChromeRasterizer{
		execPath:  cfg.ExecPath,
		scriptURL: cfg.ScriptURL,
		settle:    time.Duration(cfg.SettleMs) * time.Millisecond,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		width:     cfg.ViewportWidth,
		height:    cfg.ViewportHeight,
		scale:     cfg.Scale,
	}
	if r.scriptURL == "" {
		r.scriptURL = defaultScriptURL
	}
	if r.settle <= 0 {
		r.settle = defaultSettle
	}
	if r.timeout <= 0 {
		r.timeout = defaultTimeout
	}
	if r.width <= 0 {
		r.width = defaultViewportWidth
	}
	if r.height <= 0 {
		r.height = defaultViewportHeight
	}
	if r.scale <= 0 {
		r.scale = defaultScale
	}
	limit := cfg.MaxConcurrency
	if limit <= 0 {
		limit = defaultMaxConcurrency
	}
	r.sem = semaphore.NewWeighted(limit)
	return r
}

func (r *ChromeRasterizer) Rasterize(ctx context.Context, markup string) ([]byte, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}
	// cancelling the allocator kills the browser process
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(r.width, r.height, chromedp.EmulateScale(r.scale)),
		chromedp.Navigate(r.documentURL(markup)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(r.settle),
		chromedp.Screenshot(".mermaid", &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		logutil.GetLogger(ctx).Warn("rasterize diagram failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty screenshot", ErrUnavailable)
	}
	return buf, nil
}

func (r *ChromeRasterizer) documentURL(markup string) string {
	doc := fmt.Sprintf(shellTemplate, html.EscapeString(r.scriptURL), html.EscapeString(markup))
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(doc))
}
