package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders)
	jsonMiddleware := standardMiddleware.Append(makeResponseJSON)

	mux := pat.New()

	// Complaints
	mux.Post("/api/complaints", jsonMiddleware.ThenFunc(app.complaintHandler.CreateComplaint))
	mux.Get("/api/complaints/:id", jsonMiddleware.ThenFunc(app.complaintHandler.GetComplaintByID))
	mux.Get("/api/complaints", jsonMiddleware.ThenFunc(app.complaintHandler.GetComplaints))
	mux.Del("/api/complaints/:id", jsonMiddleware.ThenFunc(app.complaintHandler.DeleteComplaint))

	// Stored media; /api/audios is the path the first mobile clients shipped with
	mux.Get("/api/media/:filename", standardMiddleware.ThenFunc(app.complaintHandler.ServeMedia))
	mux.Get("/api/audios/:filename", standardMiddleware.ThenFunc(app.complaintHandler.ServeMedia))

	// Accounts
	mux.Post("/api/register", jsonMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/api/login", jsonMiddleware.ThenFunc(app.userHandler.SignIn))

	return mux
}
