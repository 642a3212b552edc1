// Package testing prepares the process for package tests. Import it for its
// side effects:
//
//	import _ "liyu1981.xyz/trailer-fleet-service/pkg/testing"
//
// The working directory moves to the repository root and, unless already set,
// the log directory points at a temp dir so test runs never rotate the real
// fleet.log.
package testing

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
)

const envKeyFleetLogDir = "FLEET_LOG_DIR"

func init() {
	_, filename, _, _ := runtime.Caller(0)
	root := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(root); err != nil {
		panic(err)
	}

	if _, found := os.LookupEnv(envKeyFleetLogDir); !found {
		_ = os.Setenv(envKeyFleetLogDir, filepath.Join(os.TempDir(), "trailer-fleet-test-logs"))
	}
}
