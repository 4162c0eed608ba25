package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"vetscribe-server/internal/utils"
)

// 25 MB, the transcription service's own upload ceiling.
const maxAudioUploadBytes = 25 << 20

// Transcriber is the speech-to-text call this handler needs; satisfied by
// ai.Client.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// TranscriptionHandler accepts an uploaded consultation recording and returns
// the transcript.
type TranscriptionHandler struct {
	STT Transcriber
}

// NewTranscriptionHandler creates a new TranscriptionHandler.
func NewTranscriptionHandler(stt Transcriber) *TranscriptionHandler {
	return &TranscriptionHandler{STT: stt}
}

// TranscriptionResponse carries the transcript back to the caller.
type TranscriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe reads the multipart "file" field and submits it for
// transcription. Upstream failures come back as a 502 with the service's
// error text so the operator can read it inline.
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "Audio file required: upload it as multipart field 'file'")
		return
	}
	if fileHeader.Size > maxAudioUploadBytes {
		utils.BadRequest(c, "Audio file too large: maximum is 25 MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalServerError(c, "Failed to read uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerError(c, "Failed to read uploaded file: "+err.Error())
		return
	}

	text, err := h.STT.Transcribe(c.Request.Context(), audio, fileHeader.Filename)
	if err != nil {
		utils.BadGateway(c, err.Error())
		return
	}

	utils.Success(c, "Audio transcribed successfully", TranscriptionResponse{Text: text})
}
