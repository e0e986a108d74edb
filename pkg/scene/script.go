package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
)

// EvalError is a non-fatal scene script error
type EvalError = loaders.EvalError

// LoadScript evaluates a scene script. Cameras the script does not size
// explicitly get width x height.
//
// Script mistakes come back as EvalErrors with a nil error; the error
// return is reserved for timeouts and panics.
func LoadScript(source string, width, height int, logger core.Logger) (*Scene, []EvalError, error) {
	res, evalErrs, err := loaders.NewScriptEngine(width, height, logger).Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		return nil, evalErrs, err
	}
	return &Scene{Name: "script", World: res.World, Camera: res.Camera}, nil, nil
}

// LoadScriptFile reads and evaluates a script file, folding eval errors into
// the returned error.
func LoadScriptFile(path string, width, height int, logger core.Logger) (*Scene, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	s, evalErrs, err := LoadScript(string(source), width, height, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		return nil, fmt.Errorf("%s: %w", path, joinEvalErrors(evalErrs))
	}
	s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s, nil
}

// Load resolves a scene ID as listed by ListAllScenes: a built-in name or
// "script:<name>" for a script in the scenes directory.
func Load(id string, width, height int, logger core.Logger) (*Scene, error) {
	name, ok := strings.CutPrefix(id, "script:")
	if !ok {
		return Builtin(id, width, height)
	}

	scripts, err := ListScriptScenes()
	if err != nil {
		return nil, err
	}
	for _, info := range scripts {
		if info.ID == id {
			return LoadScriptFile(info.FilePath, width, height, logger)
		}
	}
	return nil, fmt.Errorf("unknown script scene %q", name)
}

func joinEvalErrors(evalErrs []EvalError) error {
	errs := make([]error, len(evalErrs))
	for i, e := range evalErrs {
		errs[i] = e
	}
	return errors.Join(errs...)
}
