package controller

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"avatar-wardrobe/models"
	"avatar-wardrobe/service"
	"avatar-wardrobe/utils"
	"avatar-wardrobe/wardrobe"
)

// PaletteResponse is a palette as returned by the API
type PaletteResponse struct {
	ID     string           `json:"id"`
	Colors []wardrobe.Color `json:"colors"`
}

func toPaletteResponses(palettes []*wardrobe.Palette) []PaletteResponse {
	out := make([]PaletteResponse, 0, len(palettes))
	for _, p := range palettes {
		out = append(out, PaletteResponse{ID: p.ID, Colors: p.Colors()})
	}
	return out
}

// WardrobeController handles HTTP requests for the wardrobe catalog
type WardrobeController struct {
	figureData    service.FigureDataServiceInterface
	sheetService  service.WardrobeSheetServiceInterface
	iconSync      service.IconSyncServiceInterface
	iconsFolderID string
}

// NewWardrobeController creates a new WardrobeController.
// iconSync may be nil when Drive is not configured.
func NewWardrobeController(
	figureData service.FigureDataServiceInterface,
	sheetService service.WardrobeSheetServiceInterface,
	iconSync service.IconSyncServiceInterface,
	iconsFolderID string,
) *WardrobeController {
	return &WardrobeController{
		figureData:    figureData,
		sheetService:  sheetService,
		iconSync:      iconSync,
		iconsFolderID: iconsFolderID,
	}
}

// RouteSetTypes dispatches /wardrobe/settypes/{code}/options and /palettes
func (c *WardrobeController) RouteSetTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	segments := pathSegments(r.URL.Path, "/wardrobe/settypes")
	if len(segments) != 2 {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	typeCode := strings.ToLower(segments[0])

	switch segments[1] {
	case "options":
		c.GetOptions(w, r, typeCode)
	case "palettes":
		c.GetPalettes(w, r, typeCode)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// setType resolves the catalog set type for the request gender
func (c *WardrobeController) setType(r *http.Request, typeCode string) (models.Gender, *wardrobe.SetType, error) {
	gender, err := parseGenderParam(r.URL.Query().Get("gender"), models.GenderMale)
	if err != nil {
		return "", nil, err
	}
	catalog, err := c.figureData.Catalog(gender)
	if err != nil {
		return "", nil, err
	}
	setType, err := catalog.SetType(typeCode)
	if err != nil {
		return "", nil, err
	}
	return gender, setType, nil
}

// GetOptions handles GET /wardrobe/settypes/{code}/options?gender=F
// Example response data:
// {"typeCode": "hd", "gender": "M", "options": [{"id": "180", "name": "180", "preview": "180"}]}
func (c *WardrobeController) GetOptions(w http.ResponseWriter, r *http.Request, typeCode string) {
	gender, setType, err := c.setType(r, typeCode)
	if err != nil {
		writeServiceError(w, "GetOptions", err)
		return
	}

	options, err := setType.CreateOptions(string(gender))
	if err != nil {
		writeServiceError(w, "GetOptions", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"typeCode": typeCode,
		"gender":   gender,
		"options":  options,
	})
}

// GetPalettes handles GET /wardrobe/settypes/{code}/palettes?set=3030&gender=M
// With set, data is one palette per color layer of that set. Without it,
// data maps every colorable set id to its layer palettes.
func (c *WardrobeController) GetPalettes(w http.ResponseWriter, r *http.Request, typeCode string) {
	_, setType, err := c.setType(r, typeCode)
	if err != nil {
		writeServiceError(w, "GetPalettes", err)
		return
	}

	if setID := r.URL.Query().Get("set"); setID != "" {
		palettes, err := setType.SetPalettes(setID)
		if err != nil {
			writeServiceError(w, "GetPalettes", err)
			return
		}
		writeJSON(w, http.StatusOK, toPaletteResponses(palettes))
		return
	}

	all, err := setType.Palettes()
	if err != nil {
		writeServiceError(w, "GetPalettes", err)
		return
	}
	out := make(map[string][]PaletteResponse, len(all))
	for setID, palettes := range all {
		out[setID] = toPaletteResponses(palettes)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTabs handles GET /wardrobe/tabs?gender=F
func (c *WardrobeController) GetTabs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	gender, err := parseGenderParam(r.URL.Query().Get("gender"), models.GenderMale)
	if err != nil {
		writeServiceError(w, "GetTabs", err)
		return
	}
	writeJSON(w, http.StatusOK, utils.WardrobeTabs(c.figureData.Icons(), gender))
}

// GetSheet handles GET /wardrobe/sheet?type=ch&gender=M&view=full|head&format=html|pdf|png
func (c *WardrobeController) GetSheet(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetSheet: Received %s request to %s", r.Method, r.URL.String())

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	typeCode := strings.ToLower(strings.TrimSpace(query.Get("type")))
	if typeCode == "" {
		writeError(w, http.StatusBadRequest, "type parameter is required")
		return
	}
	gender, err := parseGenderParam(query.Get("gender"), models.GenderMale)
	if err != nil {
		writeServiceError(w, "GetSheet", err)
		return
	}
	view := query.Get("view")

	switch format := query.Get("format"); format {
	case "", "html":
		html, err := c.sheetService.RenderHTML(r.Context(), gender, typeCode, view)
		if err != nil {
			writeServiceError(w, "GetSheet", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))
	case "pdf":
		pdf, err := c.sheetService.GeneratePDF(r.Context(), gender, typeCode, view)
		if err != nil {
			writeServiceError(w, "GetSheet", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=wardrobe_%s_%s.pdf", typeCode, gender))
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
	case "png":
		png, err := c.sheetService.GeneratePNG(r.Context(), gender, typeCode, view)
		if err != nil {
			writeServiceError(w, "GetSheet", err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=wardrobe_%s_%s.png", typeCode, gender))
		w.WriteHeader(http.StatusOK)
		w.Write(png)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
	}
}

// ReloadFigureData handles POST /admin/wardrobe/reload
func (c *WardrobeController) ReloadFigureData(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ReloadFigureData: Received %s request", r.Method)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := c.figureData.Reload(r.Context()); err != nil {
		writeServiceError(w, "ReloadFigureData", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loadedAt": c.figureData.LoadedAt(),
	})
}

// SyncIcons handles POST /admin/wardrobe/icons/sync?folderId=...&force=true
// folderId defaults to WARDROBE_ICONS_FOLDER_ID
func (c *WardrobeController) SyncIcons(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SyncIcons: Received %s request", r.Method)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.iconSync == nil {
		writeError(w, http.StatusServiceUnavailable, "icon sync is not configured")
		return
	}

	query := r.URL.Query()
	folderID := query.Get("folderId")
	if folderID == "" {
		folderID = c.iconsFolderID
	}
	if folderID == "" {
		writeError(w, http.StatusBadRequest, "folderId parameter is required")
		return
	}
	force, _ := strconv.ParseBool(query.Get("force"))

	result, err := c.iconSync.SyncIcons(r.Context(), folderID, force)
	if err != nil {
		writeServiceError(w, "SyncIcons", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
