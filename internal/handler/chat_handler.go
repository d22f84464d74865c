/*
Package handler provides HTTP handler functions for reading the chat screen and submitting messages.
*/
package handler

import (
	"net/http"

	"yewchat/internal/app/view"
	"yewchat/internal/pkg/logx"
	"yewchat/internal/pkg/req"
	"yewchat/internal/pkg/resp"
)

// SubmitMessageInput is the body of POST /api/messages.
type SubmitMessageInput struct {
	// Text becomes the compose value. Empty text is sent as-is.
	Text string `json:"text"`
}

// HandleGetState responds with the projection of the current session state.
func HandleGetState(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, view.Project(deps.Session.Snapshot()))
	}
}

// HandleSubmitMessage sets the compose value from the request body and submits it.
// A failed send is reported to the caller; the compose input is cleared either way.
func HandleSubmitMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SubmitMessageInput

		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Session.SubmitText(r.Context(), input.Text); err != nil {
			logx.Warn("Submit from browser failed.", "session_id", deps.Session.ID, "error", err.Error())
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
