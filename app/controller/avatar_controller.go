package controller

import (
	"log"
	"net/http"
	"strings"

	"avatar-wardrobe/figure"
	"avatar-wardrobe/models"
	"avatar-wardrobe/service"
)

// AvatarController handles HTTP requests for avatars
type AvatarController struct {
	avatarService service.AvatarServiceInterface
	imageService  service.AvatarImageServiceInterface
}

// NewAvatarController creates a new AvatarController
func NewAvatarController(avatarService service.AvatarServiceInterface, imageService service.AvatarImageServiceInterface) *AvatarController {
	return &AvatarController{
		avatarService: avatarService,
		imageService:  imageService,
	}
}

func (c *AvatarController) toResponse(userID string, avatar figure.Avatar) models.AvatarResponse {
	return models.AvatarResponse{
		UserID:        userID,
		Gender:        avatar.Gender(),
		Figure:        avatar.String(),
		FullBodyImage: c.imageService.RenderURL(avatar, service.ViewFull),
		HeadOnlyImage: c.imageService.RenderURL(avatar, service.ViewHead),
	}
}

// Route dispatches /avatars/{userId}[/action] requests
func (c *AvatarController) Route(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path, "/avatars")
	if len(segments) == 0 || len(segments) > 2 {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	userID := segments[0]

	if len(segments) == 1 {
		switch r.Method {
		case http.MethodGet:
			c.GetAvatar(w, r, userID)
		case http.MethodPut:
			c.SaveAvatar(w, r, userID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	action := segments[1]
	if action == "image" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.GetAvatarImage(w, r, userID)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	switch action {
	case "set":
		c.EquipSet(w, r, userID)
	case "color":
		c.ColorLayer(w, r, userID)
	case "gender":
		c.ChangeGender(w, r, userID)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// CreateAvatar handles POST /avatars
// Example request:
// POST /avatars
// {"userId": "u-42", "gender": "F", "figure": "hd-600-1.hr-515-45"}
// Responds 201 with the stored avatar, 409 when the user already has one
func (c *AvatarController) CreateAvatar(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateAvatar: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreateAvatarRequest
	if err := decodeAndValidate(r, &req); err != nil {
		log.Printf("❌ CreateAvatar: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	gender, err := models.ParseGender(req.Gender)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	avatar, err := c.avatarService.Create(r.Context(), strings.TrimSpace(req.UserID), gender, req.Figure)
	if err != nil {
		writeServiceError(w, "CreateAvatar", err)
		return
	}

	log.Printf("✅ CreateAvatar: user_id=%s figure=%s", req.UserID, avatar)
	writeJSON(w, http.StatusCreated, c.toResponse(strings.TrimSpace(req.UserID), avatar))
}

// GetAvatar handles GET /avatars/{userId}?gender=M
// The avatar is created with the default figure of gender (M when omitted) when missing
func (c *AvatarController) GetAvatar(w http.ResponseWriter, r *http.Request, userID string) {
	gender, err := parseGenderParam(r.URL.Query().Get("gender"), models.GenderMale)
	if err != nil {
		writeServiceError(w, "GetAvatar", err)
		return
	}

	avatar, err := c.avatarService.GetOrCreate(r.Context(), userID, gender)
	if err != nil {
		writeServiceError(w, "GetAvatar", err)
		return
	}
	writeJSON(w, http.StatusOK, c.toResponse(userID, avatar))
}

// SaveAvatar handles PUT /avatars/{userId}
// Example request:
// PUT /avatars/u-42
// {"gender": "M", "figure": "hd-180-1.ch-210-66"}
func (c *AvatarController) SaveAvatar(w http.ResponseWriter, r *http.Request, userID string) {
	var req models.SaveAvatarRequest
	if err := decodeAndValidate(r, &req); err != nil {
		log.Printf("❌ SaveAvatar: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	gender, err := models.ParseGender(req.Gender)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := figure.Decode(req.Figure)
	if err != nil {
		writeServiceError(w, "SaveAvatar", err)
		return
	}
	avatar := figure.NewAvatarWithFigure(gender, f)

	if err := c.avatarService.Save(r.Context(), userID, avatar); err != nil {
		writeServiceError(w, "SaveAvatar", err)
		return
	}
	writeJSON(w, http.StatusOK, c.toResponse(userID, avatar))
}

// EquipSet handles POST /avatars/{userId}/set
// Example request:
// {"typeCode": "ch", "setId": "3030", "color": "66"}
func (c *AvatarController) EquipSet(w http.ResponseWriter, r *http.Request, userID string) {
	var req models.EquipSetRequest
	if err := decodeAndValidate(r, &req); err != nil {
		log.Printf("❌ EquipSet: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	avatar, err := c.avatarService.EquipSet(r.Context(), userID, req.TypeCode, req.SetID, req.Color)
	if err != nil {
		writeServiceError(w, "EquipSet", err)
		return
	}
	writeJSON(w, http.StatusOK, c.toResponse(userID, avatar))
}

// ColorLayer handles POST /avatars/{userId}/color
// Example request:
// {"typeCode": "ch", "layer": 1, "colorId": "82"}
func (c *AvatarController) ColorLayer(w http.ResponseWriter, r *http.Request, userID string) {
	var req models.ColorLayerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		log.Printf("❌ ColorLayer: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	avatar, err := c.avatarService.ColorLayer(r.Context(), userID, req.TypeCode, req.Layer, req.ColorID)
	if err != nil {
		writeServiceError(w, "ColorLayer", err)
		return
	}
	writeJSON(w, http.StatusOK, c.toResponse(userID, avatar))
}

// ChangeGender handles POST /avatars/{userId}/gender
// Example request:
// {"gender": "F"}
// The avatar is reset to the default figure of the new gender
func (c *AvatarController) ChangeGender(w http.ResponseWriter, r *http.Request, userID string) {
	var req models.ChangeGenderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		log.Printf("❌ ChangeGender: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	gender, err := models.ParseGender(req.Gender)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	avatar, err := c.avatarService.ResetGender(r.Context(), userID, gender)
	if err != nil {
		writeServiceError(w, "ChangeGender", err)
		return
	}
	writeJSON(w, http.StatusOK, c.toResponse(userID, avatar))
}

// GetAvatarImage handles GET /avatars/{userId}/image?view=full|head&size=thumb|medium
// Returns a JPEG render of the stored avatar
func (c *AvatarController) GetAvatarImage(w http.ResponseWriter, r *http.Request, userID string) {
	query := r.URL.Query()
	view := query.Get("view")
	if view == "" {
		view = service.ViewFull
	}
	if view != service.ViewFull && view != service.ViewHead {
		writeError(w, http.StatusBadRequest, "view must be full or head")
		return
	}
	size := query.Get("size")
	if size == "" {
		size = "medium"
	}
	if size != "thumb" && size != "medium" {
		writeError(w, http.StatusBadRequest, "size must be thumb or medium")
		return
	}

	avatar, err := c.avatarService.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "GetAvatarImage", err)
		return
	}

	imageData, err := c.imageService.GetImage(r.Context(), avatar, view, size)
	if err != nil {
		writeServiceError(w, "GetAvatarImage", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(imageData); err != nil {
		log.Printf("❌ GetAvatarImage: Error writing image: %v", err)
	}
}
