package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"avatar-wardrobe/figure"
	"avatar-wardrobe/models"
	"avatar-wardrobe/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

const (
	sheetTemplate     = "wardrobe_sheet.html"
	optionsPerPage    = 12
	sheetRenderBudget = 30 * time.Second
)

// SheetOption is one cell of the wardrobe sheet
type SheetOption struct {
	ID         string
	Club       int
	Layers     int
	PreviewURL string
	Swatches   []string // hex colors of the first layer palette
}

// SheetData is everything the sheet template needs
type SheetData struct {
	TypeCode string
	TypeName string
	Gender   models.Gender
	View     string
	Total    int
	Pages    [][]SheetOption
}

// WardrobeSheetService renders printable sheets of all options of one set type.
// Implements WardrobeSheetServiceInterface
type WardrobeSheetService struct {
	figureData  FigureDataServiceInterface
	imaging     figure.Imaging
	baseURL     string // Base URL this service is reachable on (e.g., "http://localhost:8080")
	templateDir string
}

// Ensure WardrobeSheetService implements WardrobeSheetServiceInterface
var _ WardrobeSheetServiceInterface = (*WardrobeSheetService)(nil)

// NewWardrobeSheetService creates a new WardrobeSheetService
func NewWardrobeSheetService(figureData FigureDataServiceInterface, imagingURL, baseURL, templateDir string) *WardrobeSheetService {
	if imagingURL == "" {
		imagingURL = figure.DefaultImagingURL
	}
	if templateDir == "" {
		templateDir = "templates"
	}
	return &WardrobeSheetService{
		figureData:  figureData,
		imaging:     figure.Imaging{BaseURL: imagingURL},
		baseURL:     baseURL,
		templateDir: templateDir,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// newChromeContext starts a headless browser. The returned cancel releases
// the tab and the allocator.
func newChromeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		log.Printf("⚠️  Chrome not found, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	return chromedpCtx, func() {
		chromedpCancel()
		allocCancel()
	}
}

// paginateOptions splits options into pages of optionsPerPage
func paginateOptions(options []SheetOption) [][]SheetOption {
	var pages [][]SheetOption
	for i := 0; i < len(options); i += optionsPerPage {
		end := min(i+optionsPerPage, len(options))
		pages = append(pages, options[i:end])
	}
	return pages
}

// BuildSheet collects the options of typeCode visible to gender, each with
// a preview render wearing only that set on the default body
func (s *WardrobeSheetService) BuildSheet(gender models.Gender, typeCode, view string) (*SheetData, error) {
	catalog, err := s.figureData.Catalog(gender)
	if err != nil {
		return nil, err
	}
	setType, err := catalog.SetType(typeCode)
	if err != nil {
		return nil, err
	}
	options, err := setType.CreateOptions(string(gender))
	if err != nil {
		return nil, err
	}

	var swatches []string
	if palette := setType.Palette(); palette != nil {
		for _, c := range palette.Colors() {
			if c.Selectable {
				swatches = append(swatches, "#"+c.Hex)
			}
		}
	}

	base := figure.NewAvatar(gender)
	cells := make([]SheetOption, 0, len(options))
	for _, option := range options {
		set, err := setType.Set(option.ID)
		if err != nil {
			return nil, err
		}
		avatar, err := base.WithSet(typeCode, option.Preview, "")
		if err != nil {
			return nil, err
		}

		cell := SheetOption{ID: option.ID, Club: set.Club, Layers: set.MaxColorLayers()}
		if view == ViewHead {
			cell.PreviewURL = s.imaging.HeadOnly(avatar, defaultDirection, defaultDirection)
		} else {
			cell.PreviewURL = s.imaging.FullBody(avatar, defaultDirection, defaultDirection)
		}
		if cell.Layers > 0 {
			cell.Swatches = swatches
		}
		cells = append(cells, cell)
	}

	if view != ViewHead {
		view = ViewFull
	}
	return &SheetData{
		TypeCode: typeCode,
		TypeName: utils.MapTypeCodeToName(typeCode),
		Gender:   gender,
		View:     view,
		Total:    len(cells),
		Pages:    paginateOptions(cells),
	}, nil
}

// RenderHTML renders the wardrobe sheet template
func (s *WardrobeSheetService) RenderHTML(ctx context.Context, gender models.Gender, typeCode, view string) (string, error) {
	data, err := s.BuildSheet(gender, typeCode, view)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(sheetTemplate).
		Funcs(template.FuncMap{"add1": func(i int) int { return i + 1 }}).
		ParseFiles(filepath.Join(s.templateDir, sheetTemplate))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	log.Printf("✓ Wardrobe sheet rendered: type=%s gender=%s options=%d", typeCode, gender, data.Total)
	return buf.String(), nil
}

// renderURL is the HTML sheet endpoint the browser prints
func (s *WardrobeSheetService) renderURL(gender models.Gender, typeCode, view string) string {
	q := url.Values{}
	q.Set("type", typeCode)
	q.Set("gender", string(gender))
	q.Set("view", view)
	q.Set("format", "html")
	return fmt.Sprintf("%s/wardrobe/sheet?%s", s.baseURL, q.Encode())
}

// waitForImages resolves once every preview has loaded or failed
const waitForImages = `
	Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
		return new Promise((resolve) => {
			if (img.complete) { resolve(); return; }
			const timeout = setTimeout(() => resolve(), 5000);
			img.onload = () => { clearTimeout(timeout); resolve(); };
			img.onerror = () => { clearTimeout(timeout); resolve(); };
		});
	})).then(() => true);
`

// GeneratePDF prints the sheet to an A4 PDF with headless Chrome
func (s *WardrobeSheetService) GeneratePDF(ctx context.Context, gender models.Gender, typeCode, view string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, sheetRenderBudget)
	defer cancel()

	chromedpCtx, chromedpCancel := newChromeContext(ctx)
	defer chromedpCancel()

	renderURL := s.renderURL(gender, typeCode, view)
	log.Printf("🔄 Printing wardrobe sheet: %s", renderURL)

	var ready bool
	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(waitForImages, &ready, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ Wardrobe sheet PDF generated: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}

// GeneratePNG captures the whole sheet as one PNG with headless Chrome
func (s *WardrobeSheetService) GeneratePNG(ctx context.Context, gender models.Gender, typeCode, view string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, sheetRenderBudget)
	defer cancel()

	chromedpCtx, chromedpCancel := newChromeContext(ctx)
	defer chromedpCancel()

	renderURL := s.renderURL(gender, typeCode, view)
	log.Printf("🔄 Capturing wardrobe sheet: %s", renderURL)

	var ready bool
	var buf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(waitForImages, &ready, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	log.Printf("✓ Wardrobe sheet PNG generated: %d bytes", len(buf))
	return buf, nil
}
