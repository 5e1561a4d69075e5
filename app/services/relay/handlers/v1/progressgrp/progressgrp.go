// Package progressgrp maintains the group of handlers for the progress
// ledger.
package progressgrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/learnchain/business/sys/metrics"
	"github.com/ardanlabs/learnchain/business/sys/validate"
	"github.com/ardanlabs/learnchain/business/web/auth"
	"github.com/ardanlabs/learnchain/business/web/errs"
	"github.com/ardanlabs/learnchain/foundation/events"
	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ardanlabs/learnchain/foundation/ledger/state"
	"github.com/ardanlabs/learnchain/foundation/nameservice"
	"github.com/ardanlabs/learnchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of progress ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide ledger events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// =============================================================================

// Register creates the progress record for the caller.
func (h Handlers) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	caller, err := auth.GetCaller(ctx)
	if err != nil {
		return err
	}

	var req register
	if err := decode(r, &req); err != nil {
		return err
	}

	h.Log.Infow("register", "traceid", web.GetTraceID(ctx), "caller", caller, "username", *req.Username)

	rcpt, err := h.State.RegisterUser(caller, *req.Username)
	return h.respond(ctx, w, rcpt, err)
}

// CompleteLesson marks a lesson complete for the caller.
func (h Handlers) CompleteLesson(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	caller, err := auth.GetCaller(ctx)
	if err != nil {
		return err
	}

	var req lesson
	if err := decode(r, &req); err != nil {
		return err
	}

	h.Log.Infow("complete lesson", "traceid", web.GetTraceID(ctx), "caller", caller, "lessonid", *req.LessonID)

	rcpt, err := h.State.CompleteLesson(caller, *req.LessonID)
	return h.respond(ctx, w, rcpt, err)
}

// CompleteStep marks a step of a course complete for the caller.
func (h Handlers) CompleteStep(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	caller, err := auth.GetCaller(ctx)
	if err != nil {
		return err
	}

	var req step
	if err := decode(r, &req); err != nil {
		return err
	}

	h.Log.Infow("complete step", "traceid", web.GetTraceID(ctx), "caller", caller, "stepid", *req.StepID, "courseid", *req.CourseID)

	rcpt, err := h.State.CompleteStep(caller, *req.StepID, *req.CourseID)
	return h.respond(ctx, w, rcpt, err)
}

// SetCourseTotalSteps configures the number of steps in a course. Only the
// owner is allowed to do this.
func (h Handlers) SetCourseTotalSteps(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	caller, err := auth.GetCaller(ctx)
	if err != nil {
		return err
	}

	var req totalSteps
	if err := decode(r, &req); err != nil {
		return err
	}

	h.Log.Infow("set course total steps", "traceid", web.GetTraceID(ctx), "caller", caller, "courseid", *req.CourseID, "totalsteps", *req.TotalSteps)

	rcpt, err := h.State.SetCourseTotalSteps(caller, *req.CourseID, *req.TotalSteps)
	return h.respond(ctx, w, rcpt, err)
}

// =============================================================================

// Progress returns the progress record for the address.
func (h Handlers) Progress(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address, err := addressParam(r)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, h.State.GetUserProgress(address), http.StatusOK)
}

// LessonCompleted reports whether the address completed the lesson.
func (h Handlers) LessonCompleted(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address, err := addressParam(r)
	if err != nil {
		return err
	}

	resp := completed{
		IsCompleted: h.State.IsLessonCompleted(address, web.Param(r, "lessonid")),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// StepCompleted reports whether the address completed the step in any course.
func (h Handlers) StepCompleted(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address, err := addressParam(r)
	if err != nil {
		return err
	}

	resp := completed{
		IsCompleted: h.State.IsStepCompleted(address, web.Param(r, "stepid")),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// CourseProgress returns the progress the address made on the course.
func (h Handlers) CourseProgress(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address, err := addressParam(r)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, h.State.GetCourseProgress(address, web.Param(r, "courseid")), http.StatusOK)
}

// CoursePercentage returns the completion percentage of the course for the
// address.
func (h Handlers) CoursePercentage(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address, err := addressParam(r)
	if err != nil {
		return err
	}

	resp := percentage{
		Percentage: h.State.CalculateCourseProgress(address, web.Param(r, "courseid")),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Owner returns the address that configures courses.
func (h Handlers) Owner(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := h.State.Owner()

	resp := owner{
		Owner: address,
		Name:  h.NS.Lookup(address),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Journal returns the journal entries, optionally filtered by the
// address that submitted them.
func (h Handlers) Journal(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var address database.Address
	if web.Param(r, "address") != "" {
		var err error
		if address, err = addressParam(r); err != nil {
			return err
		}
	}

	dbEntries, err := h.State.QueryEntriesByAddress(address)
	if err != nil {
		return fmt.Errorf("query journal: %w", err)
	}

	entries := make([]entry, len(dbEntries))
	for i, ed := range dbEntries {
		entries[i] = entry{
			Number:     ed.Entry.Number,
			Hash:       ed.Hash,
			PrevHash:   ed.Entry.PrevHash,
			TimeStamp:  ed.Entry.TimeStamp,
			Caller:     ed.Entry.Caller,
			CallerName: h.NS.Lookup(ed.Entry.Caller),
			Op:         ed.Entry.Op,
			Username:   ed.Entry.Username,
			LessonID:   ed.Entry.LessonID,
			StepID:     ed.Entry.StepID,
			CourseID:   ed.Entry.CourseID,
			TotalSteps: ed.Entry.TotalSteps,
		}
	}

	return web.Respond(ctx, w, entries, http.StatusOK)
}

// =============================================================================

// respond sends back the receipt of a committed operation or the reason
// the ledger rejected it.
func (h Handlers) respond(ctx context.Context, w http.ResponseWriter, rcpt state.Receipt, err error) error {
	if err != nil {
		if state.IsRejected(err) {
			metrics.AddRejections(ctx)
		}
		return errs.FromLedger(err)
	}

	metrics.AddWrites(ctx)

	if rcpt.Events == nil {
		rcpt.Events = []state.Event{}
	}

	resp := receipt{
		Success: true,
		Receipt: rcpt,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// decode reads the operation fields from the body. A body that isn't a
// JSON document is reported as a bad request.
func decode(r *http.Request, val any) error {
	if err := web.Decode(r, val); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return nil
}

// addressParam returns the checksum form of the address in the route.
func addressParam(r *http.Request) (database.Address, error) {
	address, err := database.ToAddress(web.Param(r, "address"))
	if err != nil {
		return "", errs.NewTrusted(errors.New("invalid address format"), http.StatusBadRequest)
	}

	return address, nil
}
