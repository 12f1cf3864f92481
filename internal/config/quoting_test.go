package config

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

func TestGodotenvQuoting_SnapshotName(t *testing.T) {
	content := `DATASET_SNAPSHOT='store "north" export'`
	tmpfile, err := os.CreateTemp("", ".env.test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(tmpfile.Name())
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `store "north" export`
	if env["DATASET_SNAPSHOT"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["DATASET_SNAPSHOT"])
	}
}
