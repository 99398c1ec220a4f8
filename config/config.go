package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig az alkalmazás-szintű beállítások (config.yaml). Az infrastruktúra
// titkai (DB_URL, REDIS_ADDR, MINIO_*, JWT_SECRET, GOOGLE_CLIENT_ID)
// környezeti változóból jönnek.
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Provider  ProviderConfig  `yaml:"provider"`
	Admin     AdminConfig     `yaml:"admin"`
	Wizard    WizardConfig    `yaml:"wizard"`
	Documents DocumentsConfig `yaml:"documents"`
	Uploads   UploadsConfig   `yaml:"uploads"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// ProviderConfig a szolgáltató cégadatai, a generált dokumentumok fejlécébe.
type ProviderConfig struct {
	Name           string `yaml:"name"`
	Address        string `yaml:"address"`
	RegNumber      string `yaml:"reg_number"`
	TaxNumber      string `yaml:"tax_number"`
	Representative string `yaml:"representative"`
}

// AdminConfig az admin felület engedélyezési listája. Nincs ennél finomabb
// jogosultság: aki a listán van, mindent lát.
type AdminConfig struct {
	AllowedEmails []string `yaml:"allowed_emails"`
}

type WizardConfig struct {
	DraftTTLHours int `yaml:"draft_ttl_hours"`
}

type DocumentsConfig struct {
	// A tömeges generálás ennyit vár két dokumentum között; a PDF-konverter
	// ütemezése miatt van, nem helyességi okból.
	GenerateDelayMs int    `yaml:"generate_delay_ms"`
	GotenbergURL    string `yaml:"gotenberg_url"`
}

type UploadsConfig struct {
	MaxSizeMB int `yaml:"max_size_mb"`
}

var GlobalConfig *AppConfig

// Load beolvassa a config.yaml-t és beállítja az alapértelmezéseket.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	GlobalConfig = &cfg
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Wizard.DraftTTLHours == 0 {
		cfg.Wizard.DraftTTLHours = 72
	}
	if cfg.Documents.GenerateDelayMs == 0 {
		cfg.Documents.GenerateDelayMs = 400
	}
	if cfg.Uploads.MaxSizeMB == 0 {
		cfg.Uploads.MaxSizeMB = 10
	}
}

// IsAllowedAdmin kis-nagybetű érzéketlenül veti össze az e-mail címet az
// engedélyezési listával.
func (c *AppConfig) IsAllowedAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, allowed := range c.Admin.AllowedEmails {
		if strings.ToLower(strings.TrimSpace(allowed)) == email {
			return true
		}
	}
	return false
}
