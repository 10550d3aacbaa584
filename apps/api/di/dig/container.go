package dig_container

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/trackademics/apps/api/echo"
	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/assistant"
	"github.com/trezcool/trackademics/core/task"
	"github.com/trezcool/trackademics/services/llm"
	"github.com/trezcool/trackademics/services/logger"
	"github.com/trezcool/trackademics/storage/database/inmem"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type serverParams struct {
	dig.In
	Conf         *core.Config
	Logger       core.Logger
	TaskSvc      task.Service
	AssistantSvc assistant.Service
	Validate     *validator.Validate
	Translator   ut.Translator
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDB(loggerParam DBLoggerParam) *inmemdb.DB {
	db, err := inmemdb.Open()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newAssistantService(conf *core.Config, provider assistant.Provider, logger core.Logger) assistant.Service {
	return assistant.NewService(provider, conf.Assistant.CacheTTL, logger)
}

func newValidate() *validator.Validate {
	return validator.New()
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:         p.Conf,
		Logger:       p.Logger,
		TaskSvc:      p.TaskSvc,
		AssistantSvc: p.AssistantSvc,
		Validate:     p.Validate,
		Translator:   p.Translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(inmemdb.NewExamRepository))
	must(c.Provide(inmemdb.NewSubmissionRepository))
	must(c.Provide(task.NewService))
	must(c.Provide(llmsvc.NewProvider))
	must(c.Provide(newAssistantService))
	must(c.Provide(newValidate))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
