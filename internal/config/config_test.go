package config

import (
	"os"
	"testing"
)

func TestLoadStore(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing MONGO_URL",
			env:     map[string]string{"RABBITMQ_URL": "amqp://localhost"},
			wantErr: "MONGO_URL is required",
		},
		{
			name:    "missing RABBITMQ_URL",
			env:     map[string]string{"MONGO_URL": "mongodb://localhost"},
			wantErr: "RABBITMQ_URL is required",
		},
		{
			name: "valid config with defaults",
			env: map[string]string{
				"MONGO_URL":    "mongodb://localhost:27017",
				"RABBITMQ_URL": "amqp://localhost",
			},
		},
		{
			name: "custom HTTP_ADDR and MONGO_DB override defaults",
			env: map[string]string{
				"MONGO_URL":    "mongodb://localhost:27017",
				"RABBITMQ_URL": "amqp://localhost",
				"HTTP_ADDR":    ":9090",
				"MONGO_DB":     "catalog",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadStore()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Fatalf("want error %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.MongoURL != tt.env["MONGO_URL"] {
				t.Fatalf("want MongoURL %q, got %q", tt.env["MONGO_URL"], cfg.MongoURL)
			}
			if cfg.RabbitMQURL != tt.env["RABBITMQ_URL"] {
				t.Fatalf("want RabbitMQURL %q, got %q", tt.env["RABBITMQ_URL"], cfg.RabbitMQURL)
			}
			if addr, ok := tt.env["HTTP_ADDR"]; ok && cfg.HTTPAddr != addr {
				t.Fatalf("want HTTPAddr %q, got %q", addr, cfg.HTTPAddr)
			}
			if _, ok := tt.env["HTTP_ADDR"]; !ok && cfg.HTTPAddr != defaultHTTPAddr {
				t.Fatalf("want default HTTPAddr %q, got %q", defaultHTTPAddr, cfg.HTTPAddr)
			}
			if db, ok := tt.env["MONGO_DB"]; ok && cfg.MongoDatabase != db {
				t.Fatalf("want MongoDatabase %q, got %q", db, cfg.MongoDatabase)
			}
			if _, ok := tt.env["MONGO_DB"]; !ok && cfg.MongoDatabase != defaultMongoDatabase {
				t.Fatalf("want default MongoDatabase %q, got %q", defaultMongoDatabase, cfg.MongoDatabase)
			}
			if cfg.MongoPingTimeout != defaultMongoPingTimeout {
				t.Fatalf("want MongoPingTimeout %v, got %v", defaultMongoPingTimeout, cfg.MongoPingTimeout)
			}
		})
	}
}

func TestLoadNotifications(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing RABBITMQ_URL",
			env:     map[string]string{},
			wantErr: "RABBITMQ_URL is required",
		},
		{
			name: "valid config",
			env:  map[string]string{"RABBITMQ_URL": "amqp://localhost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadNotifications()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Fatalf("want error %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.RabbitMQURL != tt.env["RABBITMQ_URL"] {
				t.Fatalf("want RabbitMQURL %q, got %q", tt.env["RABBITMQ_URL"], cfg.RabbitMQURL)
			}
			if cfg.ShutdownTimeout != defaultShutdownTimeout {
				t.Fatalf("want ShutdownTimeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
			}
		})
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MONGO_URL", "MONGO_DB", "RABBITMQ_URL", "HTTP_ADDR"} {
		if val, ok := os.LookupEnv(key); ok {
			t.Setenv(key, val)
		}
		os.Unsetenv(key)
	}
}
