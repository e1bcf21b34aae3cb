package main

type Config struct {
	Port                    int     `yaml:"port" env:"PORT" env-default:"3000" env-description:"Port the server listens on"`
	DBPath                  string  `yaml:"db-path" env:"DB_PATH" env-description:"Path of the SQLite database, defaults to ~/.camposanto/camposanto.db"`
	IndexPath               string  `yaml:"index-path" env:"INDEX_PATH" env-description:"Path of the search index, defaults to ~/.camposanto/index"`
	PhotosDir               string  `yaml:"photos-dir" env:"PHOTOS_DIR" env-description:"Directory where memorial photos are stored, defaults to ~/.camposanto/photos"`
	FQDN                    string  `yaml:"fqdn" env:"FQDN" env-default:"localhost:3000" env-description:"Domain name of the public site, used to compose links and QR codes"`
	JwtSecret               string  `yaml:"jwt-secret" env:"JWT_SECRET" env-required:"true" env-description:"Secret used to sign session tokens"`
	SessionTimeout          float64 `yaml:"session-timeout" env:"SESSION_TIMEOUT" env-default:"24" env-description:"Hours a session lasts"`
	InvitationTimeout       float64 `yaml:"invitation-timeout" env:"INVITATION_TIMEOUT" env-default:"168" env-description:"Hours an invitation can be accepted"`
	RecoveryTimeout         float64 `yaml:"recovery-timeout" env:"RECOVERY_TIMEOUT" env-default:"2" env-description:"Hours a password recovery link can be used"`
	MinPasswordLength       int     `yaml:"min-password-length" env:"MIN_PASSWORD_LENGTH" env-default:"8" env-description:"Minimum length of user passwords"`
	TemporaryPasswordLength int     `yaml:"temporary-password-length" env:"TEMPORARY_PASSWORD_LENGTH" env-default:"12" env-description:"Length of the temporary passwords sent in invitations, 12 at least"`
	SearchMaxResults        int     `yaml:"search-max-results" env:"SEARCH_MAX_RESULTS" env-default:"20" env-description:"Maximum number of results of a public search"`
	PhotoMaxWidth           int     `yaml:"photo-max-width" env:"PHOTO_MAX_WIDTH" env-default:"800" env-description:"Photos wider than this are resized"`
	SmtpServer              string  `yaml:"smtp-server" env:"SMTP_SERVER" env-description:"SMTP server used to send invitations"`
	SmtpPort                int     `yaml:"smtp-port" env:"SMTP_PORT" env-default:"587"`
	SmtpUser                string  `yaml:"smtp-user" env:"SMTP_USER"`
	SmtpPassword            string  `yaml:"smtp-password" env:"SMTP_PASSWORD"`
	DefaultLanguage         string  `yaml:"default-language" env:"DEFAULT_LANGUAGE" env-default:"en"`
	AccessLog               bool    `yaml:"access-log" env:"ACCESS_LOG" env-default:"true"`
}
