package context

import (
	"context"
)

type contextKey string

var (
	requestIDKey contextKey = "request_id"
	themeKey     contextKey = "theme"
)

func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

var validThemes = map[string]bool{
	"light":         true,
	"dark":          true,
	"high-contrast": true,
}

// IsValidTheme reports whether the console ships a stylesheet for theme
func IsValidTheme(theme string) bool {
	return validThemes[theme]
}

func SetTheme(ctx context.Context, theme string) context.Context {
	return context.WithValue(ctx, themeKey, theme)
}

// GetTheme returns the theme stored by ThemeMiddleware, defaulting to light
func GetTheme(ctx context.Context) string {
	if theme, ok := ctx.Value(themeKey).(string); ok && theme != "" {
		return theme
	}
	return "light"
}
