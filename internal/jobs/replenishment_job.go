// Package jobs agrupa os trabalhos agendados da aplicação.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/mvieira/pedidos-pro/internal/application/replenishment"
	"github.com/mvieira/pedidos-pro/pkg/logger"
)

// ReplenishmentJob roda a varredura de reposição num agendamento cron:
// entradas de embalagem aguardando reposição recebem o estoque que chegou
// desde a última passada.
type ReplenishmentJob struct {
	uc       *replenishment.UseCase
	cron     *cron.Cron
	log      *logger.Logger
	schedule string
	limit    int
}

// NewReplenishmentJob constrói o job. schedule é uma expressão cron padrão
// de 5 campos; limit é o máximo de entradas por varredura.
func NewReplenishmentJob(uc *replenishment.UseCase, log *logger.Logger, schedule string, limit int) *ReplenishmentJob {
	return &ReplenishmentJob{
		uc:       uc,
		cron:     cron.New(),
		log:      log,
		schedule: schedule,
		limit:    limit,
	}
}

// Start agenda a varredura e inicia o cron.
func (j *ReplenishmentJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		report, err := j.uc.ProcessPending(context.Background(), j.limit)
		if err != nil {
			j.log.Error().Err(err).Msg("varredura de reposição falhou")
			return
		}
		if report.Scanned > 0 {
			j.log.Info().
				Int("scanned", report.Scanned).
				Int("advanced", report.Advanced).
				Int("completed", report.Completed).
				Msg("varredura de reposição concluída")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info().Str("schedule", j.schedule).Msg("job de reposição iniciado")
	return nil
}

// Stop para o cron e espera a varredura em andamento terminar.
func (j *ReplenishmentJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.log.Info().Msg("job de reposição parado")
}
