// Package hypergrid is the public surface of the N-dimensional
// graph-activation engine: a coordinate space of processing cells,
// a CSR-based activation propagation simulator, an asynchronous
// thought-stream algebra, and the convergence orchestrator that runs
// fan-out / propagate / fan-in reasoning cycles over pluggable text
// aspects.
//
// The implementation lives in internal packages; this package
// re-exports the types and constructors consumers work with.
package hypergrid

import (
	"github.com/PMeeske/hypergrid/internal/aspect"
	"github.com/PMeeske/hypergrid/internal/config"
	"github.com/PMeeske/hypergrid/internal/convergence"
	"github.com/PMeeske/hypergrid/internal/domain"
	"github.com/PMeeske/hypergrid/internal/environment"
	"github.com/PMeeske/hypergrid/internal/mesh"
	"github.com/PMeeske/hypergrid/internal/monitoring"
	"github.com/PMeeske/hypergrid/internal/simulation"
	"github.com/PMeeske/hypergrid/internal/stream"
)

// Topology types.
type (
	// Coordinate is an immutable N-dimensional grid point.
	Coordinate = domain.Coordinate

	// DimensionDescriptor names one axis of a space.
	DimensionDescriptor = domain.DimensionDescriptor

	// Edge is a directed weighted connection between coordinates.
	Edge = domain.Edge

	// Cell is a vertex of the space.
	Cell = domain.Cell

	// CellState is the processing state of a cell.
	CellState = domain.CellState

	// Space is the container of cells and edges.
	Space = domain.Space

	// StreamConnection records a mesh-level stream link.
	StreamConnection = domain.StreamConnection

	// DomainError is the typed error returned by all operations.
	DomainError = domain.DomainError
)

// Cell state constants.
const (
	CellStateIdle       = domain.CellStateIdle
	CellStateActive     = domain.CellStateActive
	CellStateProcessing = domain.CellStateProcessing
	CellStateFaulted    = domain.CellStateFaulted
)

// Domain error codes.
const (
	ErrCodeInvalidInput = domain.ErrCodeInvalidInput
	ErrCodeRankMismatch = domain.ErrCodeRankMismatch
	ErrCodeOutOfBounds  = domain.ErrCodeOutOfBounds
	ErrCodeNotFound     = domain.ErrCodeNotFound
	ErrCodeInvalidState = domain.ErrCodeInvalidState
	ErrCodeCancelled    = domain.ErrCodeCancelled
	ErrCodeExternal     = domain.ErrCodeExternal
)

// NewCoordinate creates a coordinate from components.
func NewCoordinate(components ...int) (Coordinate, error) {
	return domain.NewCoordinate(components...)
}

// MustCoordinate creates a coordinate and panics on invalid input.
func MustCoordinate(components ...int) Coordinate {
	return domain.MustCoordinate(components...)
}

// Origin returns the zero coordinate of the given rank.
func Origin(rank int) (Coordinate, error) {
	return domain.Origin(rank)
}

// NewSpace creates a space over the given dimensions.
func NewSpace(dimensions []DimensionDescriptor) (*Space, error) {
	return domain.NewSpace(dimensions)
}

// NewEdge creates an edge with the default weight.
func NewEdge(source, target Coordinate, dimension int, label string) Edge {
	return domain.NewEdge(source, target, dimension, label)
}

// ErrorCode extracts the domain error code from err.
func ErrorCode(err error) string {
	return domain.ErrorCode(err)
}

// Thought types. The engine's thought algebra is text-valued.
type (
	// Thought is a text thought flowing through the grid.
	Thought = domain.Thought[string]

	// TextStream is a stream of text thoughts.
	TextStream = stream.Stream[string]

	// ConditionEvaluator compiles expression predicates over thoughts.
	ConditionEvaluator = stream.ConditionEvaluator
)

// NewThought creates a text thought at origin with a fresh trace id.
func NewThought(payload string, origin Coordinate) Thought {
	return domain.NewThought(payload, origin)
}

// NewConditionEvaluator creates an expression evaluator.
func NewConditionEvaluator() *ConditionEvaluator {
	return stream.NewConditionEvaluator()
}

// Simulation types.
type (
	// SimulationState is the immutable CSR activation snapshot.
	SimulationState = simulation.State

	// Backend runs propagation steps.
	Backend = simulation.Backend

	// CPUBackend is the host-CPU propagation backend.
	CPUBackend = simulation.CPUBackend

	// ActivationFunc seeds initial activations at build time.
	ActivationFunc = simulation.ActivationFunc

	// CPUOption configures the CPU backend.
	CPUOption = simulation.CPUOption
)

// CPU backend options.
var (
	WithActivation = simulation.WithActivation
	WithWorkers    = simulation.WithWorkers
)

// Default convergence parameters.
const (
	DefaultConvergenceThreshold = simulation.DefaultConvergenceThreshold
	DefaultMaxSteps             = simulation.DefaultMaxSteps
)

// NewCPUBackend creates a CPU propagation backend.
func NewCPUBackend(opts ...CPUOption) *CPUBackend {
	return simulation.NewCPUBackend(opts...)
}

// BuildState projects a space into a CSR simulation state.
func BuildState(space *Space, init ActivationFunc) (*SimulationState, error) {
	return simulation.BuildState(space, init)
}

// RunUntilConvergence steps a state to a fixpoint or the step limit.
func RunUntilConvergence(b Backend, initial *SimulationState, threshold float64, maxSteps int) (*SimulationState, int) {
	return simulation.RunUntilConvergence(b, initial, threshold, maxSteps)
}

// Aspect types.
type (
	// Aspect is a dimension-bound text transformer.
	Aspect = aspect.Aspect

	// AspectCore is the state shared by all aspects.
	AspectCore = aspect.Core

	// Analytical decomposes input structure.
	Analytical = aspect.Analytical

	// Creative reframes input around extracted concepts.
	Creative = aspect.Creative

	// Guardian gates input on lexical coherence.
	Guardian = aspect.Guardian

	// Temporal frames input against a sliding window.
	Temporal = aspect.Temporal

	// Synthesis merges per-aspect outputs at the origin.
	Synthesis = aspect.Synthesis
)

// MetaDimension marks aspects without an axis projection.
const MetaDimension = aspect.MetaDimension

// Standard aspect constructors.
var (
	NewAnalytical = aspect.NewAnalytical
	NewCreative   = aspect.NewCreative
	NewGuardian   = aspect.NewGuardian
	NewTemporal   = aspect.NewTemporal
	NewSynthesis  = aspect.NewSynthesis
)

// NewGuardianWithThreshold creates a guardian with a custom coherence
// threshold.
func NewGuardianWithThreshold(threshold float64) *Guardian {
	return aspect.NewGuardianWithThreshold(threshold)
}

// NewTemporalWithWindow creates a temporal aspect with a custom window
// capacity.
func NewTemporalWithWindow(size int) *Temporal {
	return aspect.NewTemporalWithWindow(size)
}

// Environment types.
type (
	// Environment is the pluggable text-generation port.
	Environment = environment.Environment

	// EnvironmentContext is the per-call prompt context.
	EnvironmentContext = environment.Context

	// LocalEnvironment echoes input unchanged.
	LocalEnvironment = environment.LocalEnvironment

	// OpenAIEnvironment adapts an OpenAI-compatible chat provider.
	OpenAIEnvironment = environment.OpenAIEnvironment

	// OpenAIConfig configures the OpenAI environment.
	OpenAIConfig = environment.OpenAIConfig
)

// NewLocalEnvironment creates the local echo environment.
func NewLocalEnvironment() *LocalEnvironment {
	return environment.NewLocalEnvironment()
}

// NewOpenAIEnvironment creates an OpenAI-compatible environment.
func NewOpenAIEnvironment(cfg OpenAIConfig) (*OpenAIEnvironment, error) {
	return environment.NewOpenAIEnvironment(cfg)
}

// Orchestration types.
type (
	// Engine orchestrates convergence cycles.
	Engine = convergence.Engine

	// EngineOption configures an Engine.
	EngineOption = convergence.Option

	// ObserverManager fans out cycle events.
	ObserverManager = monitoring.ObserverManager

	// CycleObserver receives cycle lifecycle events.
	CycleObserver = monitoring.CycleObserver

	// ConsoleObserver logs cycle events.
	ConsoleObserver = monitoring.ConsoleObserver

	// MetricsCollector aggregates cycle metrics as an observer.
	MetricsCollector = monitoring.MetricsCollector
)

// Engine options.
var (
	WithEnvironment     = convergence.WithEnvironment
	WithBackend         = convergence.WithBackend
	WithLogger          = convergence.WithLogger
	WithObserverManager = convergence.WithObserverManager
)

// New creates a convergence engine over the standard 3-D space.
func New(opts ...EngineOption) (*Engine, error) {
	return convergence.New(opts...)
}

// NewObserverManager creates an empty observer manager.
func NewObserverManager() *ObserverManager {
	return monitoring.NewObserverManager()
}

// NewDefaultConsoleObserver creates a console observer on stdout.
func NewDefaultConsoleObserver() *ConsoleObserver {
	return monitoring.NewDefaultConsoleObserver()
}

// NewMetricsCollector creates an empty metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return monitoring.NewMetricsCollector()
}

// Mesh and configuration.
type (
	// MeshPeer is one known mesh node.
	MeshPeer = mesh.Peer

	// MeshRegistry tracks peers and stream connections.
	MeshRegistry = mesh.Registry

	// Config carries environment-driven node settings.
	Config = config.Config
)

// ParseMeshPeers parses a MESH_PEERS value.
func ParseMeshPeers(raw string) ([]MeshPeer, error) {
	return mesh.ParsePeers(raw)
}

// NewMeshRegistry creates an empty mesh registry.
func NewMeshRegistry() *MeshRegistry {
	return mesh.NewRegistry()
}

// LoadConfig reads node configuration from the environment.
func LoadConfig() *Config {
	return config.Load()
}
