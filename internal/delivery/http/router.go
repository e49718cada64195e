package http

import (
	"net/http"

	"puskesmas-frontdesk/internal/delivery/http/handler"
	"puskesmas-frontdesk/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	poliHandler       *handler.PoliHandler
	antreanHandler    *handler.AntreanHandler
	chatHandler       *handler.ChatHandler
	sessionMiddleware *middleware.SessionMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	poliHandler *handler.PoliHandler,
	antreanHandler *handler.AntreanHandler,
	chatHandler *handler.ChatHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		poliHandler:       poliHandler,
		antreanHandler:    antreanHandler,
		chatHandler:       chatHandler,
		sessionMiddleware: sessionMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Everything below resolves the session cookie first; guests pass
	// through without a user.
	r.router.HandleFunc("/", r.root).Methods(http.MethodGet)

	// UI routes (public)
	ui := r.router.PathPrefix("/ui").Subrouter()
	ui.HandleFunc("", r.home).Methods(http.MethodGet)
	ui.HandleFunc("/login", r.authHandler.ShowLogin).Methods(http.MethodGet)
	ui.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	ui.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodGet)
	ui.HandleFunc("/register", r.authHandler.ShowRegister).Methods(http.MethodGet)
	ui.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	ui.HandleFunc("/poli", r.poliHandler.List).Methods(http.MethodGet)
	ui.HandleFunc("/poli/{id}", r.poliHandler.Detail).Methods(http.MethodGet)
	ui.HandleFunc("/chat", r.chatHandler.ShowChat).Methods(http.MethodGet)

	// Queue join via UI form: guests are sent to the login page
	uiForm := r.router.PathPrefix("/ui/antrean").Subrouter()
	uiForm.Use(middleware.RequireLoginRedirect)
	uiForm.HandleFunc("/daftar", r.antreanHandler.DaftarForm).Methods(http.MethodPost)

	// User API (protected)
	userAPI := r.router.PathPrefix("/user").Subrouter()
	userAPI.Use(middleware.RequireLogin)
	userAPI.HandleFunc("/antrean", r.antreanHandler.Daftar).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := r.router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/poli/{id}", r.poliHandler.Detail).Methods(http.MethodGet)
	admin.HandleFunc("/poli/{id}/override-dokter", r.poliHandler.OverrideDokter).Methods(http.MethodPost)
	admin.HandleFunc("/poli/{id}/auto-dokter", r.poliHandler.AutoDokter).Methods(http.MethodPost)
	admin.HandleFunc("/antrean/{id}/selesai", r.antreanHandler.Selesai).Methods(http.MethodPost)

	// Chat API (guests allowed)
	r.router.HandleFunc("/chat", r.chatHandler.Chat).Methods(http.MethodPost)

	// Session resolution and CORS wrap the whole tree
	r.router.Use(r.sessionMiddleware.Attach)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func (r *Router) root(w http.ResponseWriter, req *http.Request) {
	http.Redirect(w, req, "/ui", http.StatusFound)
}

func (r *Router) home(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"app": "puskesmas-frontdesk"}`))
}
