package config

type Config struct {
	SMTP           SMTP
	Port           int    `env:"PORT" envDefault:"3000"`
	DatabaseURL    string `env:"DATABASE_URL"`
	JWTSecret      string `env:"JWT_SECRET"`
	FrontendURL    string `env:"FRONTEND_URL" envDefault:"http://localhost:3001"`
	CORSOrigin     string `env:"CORS_ORIGIN" envDefault:"http://localhost:3001"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"` // images only, 10MB max
}

type SMTP struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"EMAIL_USERNAME"`
	Password string `env:"EMAIL_PASSWORD"`
}
