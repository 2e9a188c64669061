package handler

import (
	"net/http"

	"edenstone/internal/lead"
	"edenstone/internal/transport"
)

type leadResponse struct {
	Status string `json:"status"`
	State  string `json:"state"`
}

// SubmitLead runs one callback request through the lead dialog. Validation
// failures answer 422 with the visitor-facing message.
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var form lead.Form
	if err := transport.DecodeJSON(r, &form); err != nil {
		transport.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	d := lead.NewDialog(h.leads)
	d.Open()
	d.SetForm(form)

	if err := d.Submit(r.Context()); err != nil {
		code := statusFor(err)
		logError(r, err, code)
		transport.WriteJSONError(w, lead.Message(err), code)
		return
	}

	transport.WriteJSON(w, http.StatusOK, leadResponse{Status: "ok", State: d.State().String()})
}
