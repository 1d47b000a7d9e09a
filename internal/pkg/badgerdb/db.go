package badgerdb

import (
	"fmt"

	"fulfillment/pkg/logger"
	"github.com/dgraph-io/badger/v4"
)

// Open открывает badger по пути из конфига. Пустой путь - база в памяти,
// данные живут до остановки процесса.
func Open(log logger.Logger, path string) (*badger.DB, error) {
	dbLog := log.With(
		logger.NewField("path", path),
		logger.NewField("in_memory", path == ""),
	)

	opts := badger.DefaultOptions(path).
		WithInMemory(path == "").
		WithLogger(newLogAdapter(dbLog))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	dbLog.Info("Badger opened")
	return db, nil
}

// logAdapter пишет внутренние сообщения badger в общий логгер.
// Debug отбрасывается.
type logAdapter struct {
	log logger.Logger
}

func newLogAdapter(log logger.Logger) *logAdapter {
	return &logAdapter{log: log.With(logger.NewField("component", "badger"))}
}

func (a *logAdapter) Errorf(format string, args ...interface{}) {
	a.log.Error(fmt.Sprintf(format, args...))
}

func (a *logAdapter) Warningf(format string, args ...interface{}) {
	a.log.Warn(fmt.Sprintf(format, args...))
}

func (a *logAdapter) Infof(format string, args ...interface{}) {
	a.log.Info(fmt.Sprintf(format, args...))
}

func (a *logAdapter) Debugf(string, ...interface{}) {}
