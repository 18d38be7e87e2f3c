package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	MaxFiles         int
	PathPrefix       string
}

// Контексты загрузки совпадают с видами владельцев вложений
var UploadContexts = map[string]UploadConfig{
	"users": {
		AllowedMimeTypes: []string{
			"image/jpeg", "image/png", "image/webp", "application/pdf",
		},
		MaxSizeMB:  10,
		MaxFiles:   10,
		PathPrefix: "users",
	},
	"assets": {
		AllowedMimeTypes: []string{
			"image/jpeg", "image/png", "image/webp", "application/pdf",
			"text/plain; charset=utf-8", "application/zip",
		},
		MaxSizeMB:  20,
		MaxFiles:   20,
		PathPrefix: "assets",
	},
}
