package handler

import (
	"yewchat/internal/app/chat"
	"yewchat/internal/configs"
)

// AppDeps bundles what the HTTP handlers need.
type AppDeps struct {
	Session *chat.Session
	Config  *configs.AppConfig
}
