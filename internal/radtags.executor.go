package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ExecutorConfig holds executor configuration options.
type ExecutorConfig struct {
	MaxDepth int // Maximum tag nesting depth (0 = unlimited)
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxDepth: DefaultMaxDepth,
	}
}

// Body renders the contents of a double tag with the given locals and nesting stack.
type Body func(ctx context.Context, scope *Scope, stack []string) (string, error)

// Binding is what a tag handler sees: its qualified name, attributes, locals
// and the means to expand its body or render sibling tags.
type Binding struct {
	Name   string     // Qualified tag name (e.g., "authors:each")
	Attrs  Attributes // Attributes of the tag as written
	Locals *Scope     // Locals scoped to this expansion
	Pos    Position   // Source position of the tag

	stack []string
	body  Body
	exec  *Executor
}

// Double reports whether the tag was invoked with a body.
func (b *Binding) Double() bool {
	return b.body != nil
}

// Single reports whether the tag was invoked without a body.
func (b *Binding) Single() bool {
	return b.body == nil
}

// Expand renders the tag body with this binding's locals.
// Single tags expand to the empty string.
func (b *Binding) Expand(ctx context.Context) (string, error) {
	if b.body == nil {
		return StringValueEmpty, nil
	}
	return b.body(ctx, b.Locals, b.stack)
}

// Render renders another tag as a single tag from within this one.
func (b *Binding) Render(ctx context.Context, name string, attrs Attributes) (string, error) {
	return b.exec.renderTag(ctx, name, attrs, nil, b.Locals, b.stack, b.Pos)
}

// Stack returns a copy of the nesting stack including this tag.
func (b *Binding) Stack() []string {
	out := make([]string, len(b.stack))
	copy(out, b.stack)
	return out
}

// Executor traverses an AST and produces output by invoking tag handlers.
type Executor struct {
	registry *Registry
	config   ExecutorConfig
	logger   *zap.Logger
}

// NewExecutor creates a new executor with the given registry and configuration.
func NewExecutor(registry *Registry, config ExecutorConfig, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgExecutorCreated)

	return &Executor{
		registry: registry,
		config:   config,
		logger:   logger,
	}
}

// Execute processes the AST and returns the rendered output.
func (e *Executor) Execute(ctx context.Context, root *RootNode, scope *Scope) (string, error) {
	e.logger.Debug(LogMsgExecutorStart)

	if scope == nil {
		scope = NewScope(nil)
	}
	result, err := e.executeNodes(ctx, root.Children, scope, nil)
	if err != nil {
		return "", err
	}

	e.logger.Debug(LogMsgExecutorEnd)
	return result, nil
}

// executeNodes processes a slice of nodes and concatenates their output.
func (e *Executor) executeNodes(ctx context.Context, nodes []Node, scope *Scope, stack []string) (string, error) {
	var sb strings.Builder

	for _, node := range nodes {
		switch n := node.(type) {
		case *TextNode:
			sb.WriteString(n.Content)
		case *TagNode:
			output, err := e.executeTag(ctx, n, scope, stack)
			if err != nil {
				return "", err
			}
			sb.WriteString(output)
		default:
			return "", NewExecutorError(ErrMsgUnknownNodeType, StringValueEmpty, node.Pos())
		}
	}

	return sb.String(), nil
}

// executeTag turns a tag node into a render call, wiring its children as the body.
func (e *Executor) executeTag(ctx context.Context, tag *TagNode, scope *Scope, stack []string) (string, error) {
	var body Body
	if !tag.SelfClose {
		children := tag.Children
		body = func(ctx context.Context, scope *Scope, stack []string) (string, error) {
			return e.executeNodes(ctx, children, scope, stack)
		}
	}
	return e.renderTag(ctx, tag.Name, tag.Attributes, body, scope, stack, tag.Pos())
}

// renderTag renders a tag by name. A compound name such as "authors:each"
// renders the outer tag with a body that renders the inner one, so every
// component handler runs and may set locals for the next.
func (e *Executor) renderTag(ctx context.Context, name string, attrs Attributes, body Body, scope *Scope, stack []string, pos Position) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if head, rest, ok := strings.Cut(name, StrNameSeparator); ok {
		inner := func(ctx context.Context, scope *Scope, stack []string) (string, error) {
			return e.renderTag(ctx, rest, attrs, body, scope, stack, pos)
		}
		return e.renderTag(ctx, head, nil, inner, scope, stack, pos)
	}

	if e.config.MaxDepth > 0 && len(stack) >= e.config.MaxDepth {
		return "", NewExecutorError(ErrMsgMaxDepthExceeded, name, pos)
	}

	qualified, ok := Qualify(stack, name, e.registry.List())
	if !ok {
		return "", NewExecutorError(ErrMsgUndefinedTag, strings.Join(append(append([]string{}, stack...), name), StrNameSeparator), pos)
	}
	handler, ok := e.registry.Get(qualified)
	if !ok {
		return "", NewExecutorError(ErrMsgUndefinedTag, qualified, pos)
	}
	e.logger.Debug(LogMsgTagQualified,
		zap.String(LogFieldTag, name),
		zap.String(LogFieldQualified, qualified),
		zap.Int(LogFieldDepth, len(stack)))

	nested := make([]string, len(stack), len(stack)+1)
	copy(nested, stack)
	nested = append(nested, name)

	if attrs == nil {
		attrs = make(Attributes)
	}
	binding := &Binding{
		Name:   qualified,
		Attrs:  attrs,
		Locals: scope.Child(),
		Pos:    pos,
		stack:  nested,
		body:   body,
		exec:   e,
	}

	e.logger.Debug(LogMsgTagInvoked, zap.String(LogFieldTag, qualified))
	result, err := handler(ctx, binding)
	if err != nil {
		var execErr *ExecutorError
		if errors.As(err, &execErr) {
			return "", err
		}
		return "", NewExecutorErrorWithCause(ErrMsgTagFailed, qualified, pos, err)
	}

	e.logger.Debug(LogMsgTagComplete, zap.String(LogFieldTag, qualified))
	return result, nil
}

// ExecutorError represents an executor error with context.
type ExecutorError struct {
	Message  string
	TagName  string
	Position Position
	Cause    error
}

// NewExecutorError creates a new executor error.
func NewExecutorError(message, tagName string, pos Position) *ExecutorError {
	return &ExecutorError{
		Message:  message,
		TagName:  tagName,
		Position: pos,
	}
}

// NewExecutorErrorWithCause creates a new executor error with a cause.
func NewExecutorErrorWithCause(message, tagName string, pos Position, cause error) *ExecutorError {
	return &ExecutorError{
		Message:  message,
		TagName:  tagName,
		Position: pos,
		Cause:    cause,
	}
}

// Error implements the error interface.
func (e *ExecutorError) Error() string {
	var result string
	if e.TagName != StringValueEmpty {
		result = fmt.Sprintf(ErrFmtWithTagAndPosition, e.Message, e.TagName, e.Position.String())
	} else {
		result = fmt.Sprintf(ErrFmtWithPosition, e.Message, e.Position.String())
	}
	if e.Cause != nil {
		result = fmt.Sprintf(ErrFmtWithCause, result, e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *ExecutorError) Unwrap() error {
	return e.Cause
}

// Executor error message constants
const (
	ErrMsgMaxDepthExceeded = "maximum nesting depth exceeded"
	ErrMsgUnknownNodeType  = "unknown node type"
	ErrMsgUndefinedTag     = "undefined tag"
	ErrMsgTagFailed        = "tag rendering failed"
)
