package api

import (
	"net"
	"net/http"
	"strconv"

	"github.com/jcortes-dev/portfolio-backend/database"
	"github.com/jcortes-dev/portfolio-backend/errs"
	"github.com/jcortes-dev/portfolio-backend/models"
	"github.com/jcortes-dev/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactRepo
	notifier    *services.Notifier
}

func newContactHandler(contactRepo *database.ContactRepo, notifier *services.Notifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

// submit accepts a public contact-form submission, records the sender's
// address metadata and queues an email notification.
func (h contactHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ContactCreate
		if apiErr := decodeStrict(r, &payload); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if payload.FirstName == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("first_name"))
			return
		}
		if payload.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if payload.Message == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("message"))
			return
		}

		submission := models.ContactSubmission{
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			Message:   payload.Message,
		}

		if ip := clientIP(r); ip != "" {
			submission.IPAddress = &ip
		}
		if ua := r.UserAgent(); ua != "" {
			if len(ua) > 500 {
				ua = ua[:500]
			}
			submission.UserAgent = &ua
		}

		if err := h.contactRepo.Add(&submission); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create submission", "contact submission", err))
			return
		}

		if h.notifier.Enabled() {
			go func(s models.ContactSubmission) {
				if err := h.notifier.SendContactNotification(s); err != nil {
					h.logger.Error().Err(err).Int64("submissionID", s.ID).Msg("Failed to send contact notification")
				}
			}(submission)
		}

		h.logger.Info().Str("email", submission.Email).Msg("Contact form submitted")

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, ContactSubmitted{
			Success: true,
			Message: "Thank you for your message. I'll get back to you soon!",
		})
	}
}

// list returns submissions, filterable by read/archived state (admin only).
func (h contactHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ContactFilter{
			Offset: queryInt(r, "skip", 0),
			Limit:  queryInt(r, "limit", 50),
		}

		if isRead := r.URL.Query().Get("is_read"); isRead != "" {
			parsed, err := strconv.ParseBool(isRead)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("is_read", "must be a boolean"))
				return
			}
			filter.IsRead = &parsed
		}
		if isArchived := r.URL.Query().Get("is_archived"); isArchived != "" {
			parsed, err := strconv.ParseBool(isArchived)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("is_archived", "must be a boolean"))
				return
			}
			filter.IsArchived = &parsed
		}

		submissions, err := h.contactRepo.Find(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find submissions", "contact submissions", err))
			return
		}

		h.responder.WriteJSON(w, emptyAsList(submissions))
	}
}

// stats returns inbox totals (admin only).
func (h contactHandler) stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.contactRepo.Stats()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count submissions", "contact submissions", err))
			return
		}

		h.responder.WriteJSON(w, stats)
	}
}

// get returns a single submission (admin only).
func (h contactHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, apiErr := pathID(r, "submissionID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		submission, err := h.contactRepo.FindByID(submissionID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find submission", "contact submission", err))
			return
		}

		h.responder.WriteJSON(w, submission)
	}
}

// update flips the read/archived flags on a submission (admin only).
func (h contactHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, apiErr := pathID(r, "submissionID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		submission, err := h.contactRepo.FindByID(submissionID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find submission", "contact submission", err))
			return
		}

		var patch ContactPatch
		if apiErr := decodeStrict(r, &patch); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		patch.Apply(submission)

		if err := h.contactRepo.Save(submission); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update submission", "contact submission", err))
			return
		}

		h.responder.WriteJSON(w, submission)
	}
}

// deleteSubmission deletes a submission by ID (admin only).
func (h contactHandler) deleteSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, apiErr := pathID(r, "submissionID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if _, err := h.contactRepo.FindByID(submissionID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find submission", "contact submission", err))
			return
		}

		if err := h.contactRepo.Delete(submissionID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete submission", "contact submission", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// markAllRead flags every unread submission as read (admin only).
func (h contactHandler) markAllRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.contactRepo.MarkAllRead(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update submissions", "contact submissions", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": "All submissions marked as read",
		})
	}
}

// clientIP extracts the sender's address, preferring the proxy header.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
