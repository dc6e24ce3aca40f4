package router

import (
	"net/http"

	"avatar-wardrobe/app/controller"
)

// Controllers groups the controllers the router dispatches to
type Controllers struct {
	Avatar   *controller.AvatarController
	Wardrobe *controller.WardrobeController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every HTTP route of the service on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Avatars routes
	// Create avatar
	mux.HandleFunc("/avatars", controllers.Avatar.CreateAvatar)

	// Avatar by user id - GET/PUT, plus /set, /color, /gender and /image actions
	mux.HandleFunc("/avatars/", controllers.Avatar.Route)

	// Wardrobe routes
	// Options and palettes of a set type
	mux.HandleFunc("/wardrobe/settypes/", controllers.Wardrobe.RouteSetTypes)

	// Editor tab layout
	mux.HandleFunc("/wardrobe/tabs", controllers.Wardrobe.GetTabs)

	// Printable sheet of a set type (html, pdf or png)
	mux.HandleFunc("/wardrobe/sheet", controllers.Wardrobe.GetSheet)

	// Admin routes
	mux.HandleFunc("/admin/wardrobe/reload", controllers.Wardrobe.ReloadFigureData)
	mux.HandleFunc("/admin/wardrobe/icons/sync", controllers.Wardrobe.SyncIcons)

	// Wardrobe icons referenced by the tab layout
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}
