// file: internal/server/message_service.go
// version: 1.0.0
// guid: 9b8c165b-f02e-4c35-8c9e-ec8e4942164f

package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acikyardim/yardim-paneli/internal/messaging"
)

type smsRequest struct {
	To   string `json:"to" binding:"required"`
	Body string `json:"body" binding:"required"`
}

type emailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
	ReplyTo string `json:"reply_to"`
}

type bulkSMSRequest struct {
	Messages []messaging.BulkSMSItem `json:"messages" binding:"required"`
}

func (s *Server) listMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	msgs, err := s.store.ListMessages(s.orgForRequest(c), limit)
	if err != nil {
		RespondWithInternalError(c, "failed to list messages")
		return
	}
	RespondWithList(c, msgs, len(msgs), limit, 0)
}

func (s *Server) sendSMS(c *gin.Context) {
	var req smsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "to and body are required")
		return
	}

	orgID := s.orgForRequest(c)
	msg, err := s.dispatcher.SendSMS(c.Request.Context(), orgID, req.To, req.Body)
	if err != nil {
		RespondWithInternalError(c, "failed to send sms")
		return
	}

	s.recordActivity(c, orgID, "", "message.sms", "messages", msg.ID, req.To)
	RespondWithCreated(c, msg)
}

func (s *Server) sendEmail(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "to and subject are required")
		return
	}
	if req.HTML == "" && req.Text == "" {
		RespondWithValidationError(c, "html", "html or text body is required")
		return
	}

	orgID := s.orgForRequest(c)
	msg, err := s.dispatcher.SendEmail(c.Request.Context(), orgID, messaging.Email{
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.HTML,
		Text:    req.Text,
		ReplyTo: req.ReplyTo,
	})
	if err != nil {
		RespondWithInternalError(c, "failed to send email")
		return
	}

	s.recordActivity(c, orgID, "", "message.email", "messages", msg.ID, req.To)
	RespondWithCreated(c, msg)
}

// sendBulkSMS dispatches a paced batch. The batch runs synchronously; large
// batches are bounded by the request body limit and the dispatcher pacing.
func (s *Server) sendBulkSMS(c *gin.Context) {
	var req bulkSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		RespondWithBadRequest(c, "messages are required")
		return
	}

	orgID := s.orgForRequest(c)
	sent, err := s.dispatcher.SendBulkSMS(c.Request.Context(), orgID, req.Messages)
	if err != nil {
		// Partial results still matter to the caller.
		logOp := NewOperationLogger("sendBulkSMS", c.Request.Method, c.Request.URL.Path)
		logOp.LogError(0, err)
	}

	s.recordActivity(c, orgID, "", "message.bulk_sms", "messages", "", strconv.Itoa(len(sent))+" sent")
	RespondWithList(c, sent, len(sent), len(req.Messages), 0)
}

func (s *Server) listActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := s.store.ListActivity(s.orgForRequest(c), limit)
	if err != nil {
		RespondWithInternalError(c, "failed to list activity")
		return
	}
	RespondWithList(c, entries, len(entries), limit, 0)
}
