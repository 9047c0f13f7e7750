package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// Read reads a scene from a JSON file, expanding environment variables first.
func Read(filePath string, logger golog.Logger) (*Scene, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a scene from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger golog.Logger) (*Scene, error) {
	scene := Scene{ConfigFilePath: originalPath}
	if err := json.NewDecoder(r).Decode(&scene); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Scene from json")
	}
	if err := scene.Validate("scene"); err != nil {
		return nil, err
	}
	logger.Debugw("read scene",
		"path", originalPath,
		"bounds", scene.Bounds,
		"max_depth", scene.Depth(),
		"shapes", scene.ShapeLabels(),
	)
	return &scene, nil
}
