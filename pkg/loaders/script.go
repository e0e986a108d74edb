// Package loaders evaluates scene scripts into worlds and cameras.
// Scripts are Lisp source run in a sandboxed zygomys environment.
package loaders

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/world"
	zygo "github.com/glycerine/zygomys/zygo"
)

// DefaultFieldOfView is used when a script does not set :fov
const DefaultFieldOfView = math.Pi / 3

var (
	defaultFrom = core.Point(0, 1.5, -5)
	defaultTo   = core.Point(0, 1, 0)
	defaultUp   = core.Vector(0, 1, 0)
)

// EvalError is a non-fatal script error, such as a parse error or a
// builtin rejecting its arguments.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ScriptResult is what a successful evaluation produces
type ScriptResult struct {
	World  *world.World
	Camera *renderer.Camera
}

// ScriptEngine evaluates scene scripts. Each call to Evaluate gets a fresh
// sandbox; a call still running when a newer one starts is superseded.
type ScriptEngine struct {
	width, height int
	logger        core.Logger
	timeout       time.Duration

	mu         sync.Mutex
	generation uint64
	running    sync.WaitGroup // evaluation goroutines still alive
}

// NewScriptEngine creates an engine whose cameras default to width x height
func NewScriptEngine(width, height int, logger core.Logger) *ScriptEngine {
	return &ScriptEngine{width: width, height: height, logger: logger, timeout: EvalTimeout}
}

// SetTimeout changes the evaluation limit; d <= 0 restores EvalTimeout
func (e *ScriptEngine) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = EvalTimeout
	}
	e.timeout = d
}

// Evaluate runs source and returns the scene it describes.
//
// Return semantics:
//   - On success: result + nil errors + nil error
//   - On parse/eval failure: nil result + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *ScriptEngine) Evaluate(source string) (*ScriptResult, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ev := newEvaluation()
	e.running.Add(1)
	go func() {
		defer e.running.Done()
		defer func() {
			if r := recover(); r != nil {
				ev.done <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(ev, source)
		ev.done <- evalResult{result: res, errors: evalErrs, err: err}
	}()

	return ev.await(e.timeout, func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.generation == gen
	})
}

func (e *ScriptEngine) evaluate(ev *evaluation, source string) (*ScriptResult, []EvalError, error) {
	b := newSceneBuilder(e.width, e.height)

	if strings.TrimSpace(source) != "" {
		env := zygo.NewZlispSandbox()
		if !ev.attach(env) {
			env.Stop()
			return nil, nil, errHalted
		}
		defer func() {
			if ev.detach() {
				env.Stop()
			}
		}()

		registerBuiltins(env, b, ev.halted.Load)

		if err := env.LoadString(preprocessSource(source)); err != nil {
			return nil, parseZygomysError(err), nil
		}
		if _, err := env.Run(); err != nil {
			return nil, parseZygomysError(err), nil
		}
	}

	camera, err := b.buildCamera()
	if err != nil {
		return nil, []EvalError{{Message: err.Error()}}, nil
	}

	if e.logger != nil {
		e.logger.Printf("Script built %d shapes, %d lights, camera %dx%d\n",
			len(b.shapes), len(b.lights), camera.HSize(), camera.VSize())
	}

	return &ScriptResult{
		World:  world.NewWorld(b.shapes, b.lights),
		Camera: camera,
	}, nil, nil
}

// sceneBuilder collects what the builtins declare during one evaluation
type sceneBuilder struct {
	shapes []geometry.Shape
	lights []lights.PointLight
	camera *cameraSpec
	width  int
	height int
}

type cameraSpec struct {
	width, height int
	fieldOfView   float64
	transform     core.Transform
}

func newSceneBuilder(width, height int) *sceneBuilder {
	return &sceneBuilder{width: width, height: height}
}

func (b *sceneBuilder) buildCamera() (*renderer.Camera, error) {
	spec := b.camera
	if spec == nil {
		spec = &cameraSpec{
			width:       b.width,
			height:      b.height,
			fieldOfView: DefaultFieldOfView,
			transform:   core.ViewTransform(defaultFrom, defaultTo, defaultUp),
		}
	}
	return renderer.NewCamera(spec.width, spec.height, spec.fieldOfView, spec.transform)
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting a line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
