package config

const (
	TLSNone          = "none"
	TLSOpportunistic = "opportunistic"
	TLSStartTLS      = "starttls"
	TLSImplicit      = "ssl"
)

type EmailConfig struct {
	Server   string
	Port     int
	Username string
	Password string
	TLS      string
	Sender   string
	Receiver string
}

// HasAuth meldet, ob SMTP-Anmeldedaten konfiguriert sind
func (e EmailConfig) HasAuth() bool {
	return e.Username != ""
}

// GetTLSPolicy liefert die TLS-Policy. Ohne explizite Angabe wird mit
// Anmeldedaten STARTTLS erzwungen, sonst unverschlüsselt eingeliefert.
func (e EmailConfig) GetTLSPolicy() string {
	if e.TLS != "" {
		return e.TLS
	}
	if e.HasAuth() {
		return TLSStartTLS
	}
	return TLSNone
}

// GetPort liefert den SMTP-Port, Standard ist 25 bzw. 465 bei implizitem TLS
func (e EmailConfig) GetPort() int {
	if e.Port > 0 {
		return e.Port
	}
	if e.GetTLSPolicy() == TLSImplicit {
		return 465
	}
	return 25
}

func validTLSPolicy(policy string) bool {
	switch policy {
	case "", TLSNone, TLSOpportunistic, TLSStartTLS, TLSImplicit:
		return true
	}
	return false
}
