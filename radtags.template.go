package radtags

import (
	"context"

	"github.com/itsatony/go-radtags/internal"
	"go.uber.org/zap"
)

// Template is a parsed template bound to the engine that parsed it.
type Template struct {
	source string
	ast    *internal.RootNode
	engine *Engine
}

// Render renders the template for the given page view.
func (t *Template) Render(ctx context.Context, env Env) (string, error) {
	req := t.engine.config.request
	if env.Request != nil {
		req = *env.Request
	}

	scope := internal.NewScope(map[string]any{LocalRequest: req})
	if env.Page != nil {
		scope.Set(LocalPage, env.Page)
	}
	if env.Author != nil {
		scope.Set(LocalAuthor, env.Author)
	}

	pageURL := ""
	if env.Page != nil {
		pageURL = env.Page.URL
	}
	t.engine.logger.Debug(LogMsgRenderStart, zap.String(LogFieldPage, pageURL))

	out, err := t.engine.executor.Execute(ctx, t.ast, scope)
	if err != nil {
		t.engine.logger.Debug(LogMsgRenderFailed, zap.String(LogFieldPage, pageURL), zap.Error(err))
		return "", convertInternalError(err)
	}

	t.engine.logger.Debug(LogMsgRenderComplete, zap.Int(LogFieldOutput, len(out)))
	return out, nil
}

// Source returns the template source.
func (t *Template) Source() string {
	return t.source
}
