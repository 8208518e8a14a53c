package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"sdfdig/internal/config"
	"sdfdig/internal/game"
	"sdfdig/internal/graphics"
	"sdfdig/internal/profiling"

	"github.com/sirupsen/logrus"
	"github.com/xlab/closer"
)

var (
	configPath = flag.String("config", "", "settings file (.yaml, .yml or .toml); defaults when empty")
	scriptPath = flag.String("script", "", "frame script (.yaml); a built-in walk when empty")
	outDir     = flag.String("out", "", "directory for compressed buffer captures (disabled when empty)")
	verbose    = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if *verbose {
		log.Level = logrus.DebugLevel
	}

	closer.Bind(func() {
		log.WithField("counters", profiling.Counters()).Info("sdfdig finished")
	})
	closer.Checked(func() error { return run(log) }, true)
	closer.Close()
}

func run(log *logrus.Logger) error {
	settings := config.Default()
	if *configPath != "" {
		var err error
		if settings, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	script := defaultScript()
	if *scriptPath != "" {
		var err error
		if script, err = loadScript(*scriptPath); err != nil {
			return err
		}
	}

	session, err := game.NewSession(settings, log)
	if err != nil {
		return err
	}
	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			return err
		}
		session.OnUpload(captureWriter(*outDir, session.ID.String()))
	}

	if err := session.Start(); err != nil {
		return err
	}
	hits, misses := 0, 0
	for _, in := range script.Inputs() {
		rep, err := session.Frame(in)
		if err != nil {
			return err
		}
		if rep.Dig != nil {
			if rep.Dig.Hit {
				hits++
			} else {
				misses++
			}
		}
	}

	log.WithFields(logrus.Fields{
		"frames":  session.Frames,
		"chunks":  session.Store.Len(),
		"hits":    hits,
		"misses":  misses,
		"boxes":   session.Buffer.BoxCount(),
		"spheres": session.Buffer.SphereCount(),
	}).Info("script complete")
	return nil
}

// captureWriter writes every uploaded buffer to its own numbered file.
func captureWriter(dir, sessionID string) game.UploadFunc {
	seq := 0
	return func(buf *graphics.StorageBuffer) error {
		seq++
		path := filepath.Join(dir, fmt.Sprintf("%s-%04d.sdfcap.zst", sessionID, seq))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := graphics.WriteCapture(f, buf); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}
