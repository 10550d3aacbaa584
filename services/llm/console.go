package llmsvc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/assistant"
)

var (
	AskedQuestions = make([]string, 0)
	mu             sync.Mutex
)

type consoleProvider struct {
	out     io.Writer
	appName string
}

var _ assistant.Provider = (*consoleProvider)(nil)

// NewConsoleProvider returns a provider which prints the prompt and answers with a canned reply.
func NewConsoleProvider(conf *core.Config) assistant.Provider {
	return &consoleProvider{out: os.Stdout, appName: conf.AppName}
}

func (p consoleProvider) Ask(_ context.Context, background, question string) (string, error) {
	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "----- [%s] assistant prompt -----\n", p.appName)
	_, _ = fmt.Fprintf(body, "System: %s\n", background)
	_, _ = fmt.Fprintf(body, "User: %s\n", question)
	_, _ = fmt.Fprint(body, "---------------------------------\n")
	_, _ = fmt.Fprint(p.out, body.String())

	mu.Lock()
	AskedQuestions = append(AskedQuestions, question)
	mu.Unlock()

	return fmt.Sprintf("(console assistant) You asked: %q. Configure an LLM provider for real answers.", question), nil
}
