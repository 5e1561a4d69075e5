// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/learnchain/app/services/relay/handlers/v1/progressgrp"
	"github.com/ardanlabs/learnchain/business/web/mid"
	"github.com/ardanlabs/learnchain/foundation/events"
	"github.com/ardanlabs/learnchain/foundation/ledger/state"
	"github.com/ardanlabs/learnchain/foundation/nameservice"
	"github.com/ardanlabs/learnchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pgh := progressgrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		NS:    cfg.NS,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	authen := mid.Authenticate()

	app.Handle(http.MethodGet, version, "/events", pgh.Events)
	app.Handle(http.MethodPost, version, "/register", pgh.Register, authen)
	app.Handle(http.MethodPost, version, "/lessons/complete", pgh.CompleteLesson, authen)
	app.Handle(http.MethodPost, version, "/steps/complete", pgh.CompleteStep, authen)
	app.Handle(http.MethodPost, version, "/courses/totalsteps", pgh.SetCourseTotalSteps, authen)
	app.Handle(http.MethodGet, version, "/progress/:address", pgh.Progress)
	app.Handle(http.MethodGet, version, "/lessons/:address/:lessonid", pgh.LessonCompleted)
	app.Handle(http.MethodGet, version, "/steps/:address/:stepid", pgh.StepCompleted)
	app.Handle(http.MethodGet, version, "/courses/:address/:courseid", pgh.CourseProgress)
	app.Handle(http.MethodGet, version, "/courses/:address/:courseid/percentage", pgh.CoursePercentage)
	app.Handle(http.MethodGet, version, "/owner", pgh.Owner)
	app.Handle(http.MethodGet, version, "/journal/list", pgh.Journal)
	app.Handle(http.MethodGet, version, "/journal/list/:address", pgh.Journal)
}
