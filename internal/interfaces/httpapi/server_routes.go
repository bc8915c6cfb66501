package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /v1/session/login", handler.Login)
	mux.Handle("POST /v1/session/logout", RequireAuth(verifier, http.HandlerFunc(handler.Logout)))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerRosterRoutes(mux, handler, verifier)
	registerCheckinRoutes(mux, handler, verifier)
	registerMatchRoutes(mux, handler, verifier)
	registerLeaderboardRoutes(mux, handler, verifier)
	registerTeamsheetRoutes(mux, handler, verifier)
	registerImportRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler, verifier)
	registerLiveRoutes(mux, handler, verifier)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("GET /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.GetPlayer)))
	mux.Handle("POST /v1/players", RequireAdmin(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /v1/players/{playerID}/attributes", RequireAdmin(verifier, http.HandlerFunc(handler.UpdatePlayerAttributes)))
	mux.Handle("PUT /v1/players/{playerID}/photo", RequireAdmin(verifier, http.HandlerFunc(handler.SetPlayerPhoto)))
	mux.Handle("DELETE /v1/players/{playerID}", RequireAdmin(verifier, http.HandlerFunc(handler.DeletePlayer)))
}

func registerCheckinRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/checkins", RequireAuth(verifier, http.HandlerFunc(handler.GetQueue)))
	mux.Handle("POST /v1/checkins", RequireAuth(verifier, http.HandlerFunc(handler.CheckIn)))
	mux.Handle("DELETE /v1/checkins/{checkinID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveCheckin)))
	mux.Handle("PUT /v1/checkins/unlock-time", RequireAdmin(verifier, http.HandlerFunc(handler.SetUnlockTime)))
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListMatches)))
	mux.Handle("GET /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMatch)))
	mux.Handle("POST /v1/matches", RequireAdmin(verifier, http.HandlerFunc(handler.SaveMatch)))
	mux.Handle("PUT /v1/matches/{matchID}", RequireAdmin(verifier, http.HandlerFunc(handler.UpdateMatch)))
	mux.Handle("DELETE /v1/matches/{matchID}", RequireAdmin(verifier, http.HandlerFunc(handler.DeleteMatch)))
}

func registerLeaderboardRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
	mux.Handle("GET /v1/squad", RequireAuth(verifier, http.HandlerFunc(handler.GetSquad)))
}

func registerTeamsheetRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/teams/current", RequireAuth(verifier, http.HandlerFunc(handler.GetCurrentTeams)))
	mux.Handle("POST /v1/teams/generate", RequireAdmin(verifier, http.HandlerFunc(handler.GenerateTeams)))
	mux.Handle("POST /v1/teams/move", RequireAdmin(verifier, http.HandlerFunc(handler.MoveTeamPlayer)))
	mux.Handle("POST /v1/teams/publish", RequireAdmin(verifier, http.HandlerFunc(handler.PublishTeams)))
	mux.Handle("DELETE /v1/teams/current", RequireAdmin(verifier, http.HandlerFunc(handler.ClearCurrentTeams)))
}

func registerImportRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/import/templates/alltime", RequireAuth(verifier, http.HandlerFunc(handler.DownloadAllTimeTemplate)))
	mux.Handle("GET /v1/import/templates/season", RequireAuth(verifier, http.HandlerFunc(handler.DownloadSeasonTemplate)))
	mux.Handle("POST /v1/import/alltime", RequireAdmin(verifier, http.HandlerFunc(handler.ImportAllTime)))
	mux.Handle("POST /v1/import/season", RequireAdmin(verifier, http.HandlerFunc(handler.ImportSeason)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/admin/seed", RequireAdmin(verifier, http.HandlerFunc(handler.SeedLegends)))
	mux.Handle("POST /v1/admin/reset", RequireAdmin(verifier, http.HandlerFunc(handler.ResetGroup)))
}

func registerLiveRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/live", RequireAuth(verifier, http.HandlerFunc(handler.WatchDashboard)))
}
