package handler

import (
	"github.com/gin-gonic/gin"
)

// StreamPaths are the routes that hold a response open; compression must
// skip them.
var StreamPaths = []string{
	"/api/generate-notes/stream",
	"/api/create-schedule/stream",
	"/api/chat/stream",
	"/api/chat/ws",
}

// GenerationPaths call the generation backend and are rate limited.
var GenerationPaths = []string{
	"/api/generate-study-content",
	"/api/generate-notes/stream",
	"/api/create-schedule",
	"/api/create-schedule/stream",
	"/api/chat",
	"/api/chat/stream",
}

type RouterDeps struct {
	Subjects *SubjectHandler
	Study    *StudyHandler
	Schedule *ScheduleHandler
	Chat     *ChatHandler
	Export   *ExportHandler
	Sessions *SessionHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/subjects", deps.Subjects.List)
	api.GET("/get-pyqs", deps.Subjects.PYQs)
	api.GET("/get-resources", deps.Subjects.Resources)

	api.POST("/generate-study-content", deps.Study.GenerateContent)
	api.POST("/generate-notes/stream", deps.Study.NotesStream)

	api.POST("/create-schedule", deps.Schedule.Create)
	api.POST("/create-schedule/stream", deps.Schedule.Stream)

	api.POST("/chat", deps.Chat.Reply)
	api.POST("/chat/stream", deps.Chat.Stream)
	api.GET("/chat/ws", deps.Chat.WebSocket)

	api.POST("/download-pdf", deps.Export.DownloadPDF)
	api.POST("/download-notes", deps.Export.DownloadNotes)
	api.POST("/flashcards/export", deps.Export.Flashcards)

	api.POST("/save-session", deps.Sessions.Save)
	api.GET("/get-sessions", deps.Sessions.List)
}
