// Package worker agrupa los procesos en segundo plano del servicio.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/creditcard-api/internal/domain"
	"github.com/jhoicas/creditcard-api/internal/domain/entity"
	"github.com/jhoicas/creditcard-api/internal/domain/repository"
	"github.com/jhoicas/creditcard-api/pkg/logger"
)

// InvoiceGenerator cierra la factura pendiente de una tarjeta
// (usecase.InvoiceUseCase en producción).
type InvoiceGenerator interface {
	Generate(ctx context.Context, creditCardID string) (*entity.Invoice, error)
}

// InvoiceCloser cierra periódicamente la factura pendiente de cada tarjeta.
// Una corrida recorre todas las tarjetas; el fallo en una no detiene las demás.
type InvoiceCloser struct {
	cardRepo  repository.CardRepository
	invoiceUC InvoiceGenerator
	log       *logger.Logger
	cron      *cron.Cron
}

// NewInvoiceCloser construye el worker.
func NewInvoiceCloser(
	cardRepo repository.CardRepository,
	invoiceUC InvoiceGenerator,
	log *logger.Logger,
) *InvoiceCloser {
	return &InvoiceCloser{
		cardRepo:  cardRepo,
		invoiceUC: invoiceUC,
		log:       log,
	}
}

// Start programa la corrida con la expresión cron dada (ej. "0 0 1 * *",
// medianoche del día 1 de cada mes) y arranca el scheduler.
func (w *InvoiceCloser) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { w.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("programar cierre de facturas: %w", err)
	}
	c.Start()
	w.cron = c
	w.log.Info().Str("cron", spec).Msg("cierre mensual de facturas programado")
	return nil
}

// Stop detiene el scheduler y espera a que termine la corrida en curso.
func (w *InvoiceCloser) Stop() {
	if w.cron == nil {
		return
	}
	ctx := w.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		w.log.Warn().Msg("cierre de facturas: timeout esperando la corrida en curso")
	}
}

// RunOnce cierra la factura pendiente de cada tarjeta registrada.
func (w *InvoiceCloser) RunOnce(ctx context.Context) {
	cards, err := w.cardRepo.List()
	if err != nil {
		w.log.Error().Err(err).Msg("cierre de facturas: listar tarjetas")
		return
	}

	var closed, skipped, failed int
	for _, card := range cards {
		invoice, err := w.invoiceUC.Generate(ctx, card.ID)
		if err != nil {
			// Sin operaciones nuevas el período ya facturado sigue vigente;
			// no es un fallo de la corrida.
			if errors.Is(err, domain.ErrConflict) {
				skipped++
				w.log.Debug().Str("credit_card_id", card.ID).Msg("cierre de facturas: período ya facturado")
				continue
			}
			failed++
			w.log.Error().Err(err).Str("credit_card_id", card.ID).Msg("cierre de facturas: generar factura")
			continue
		}
		closed++
		w.log.Info().
			Str("credit_card_id", card.ID).
			Str("invoice_id", invoice.ID).
			Int("month", invoice.Month).
			Int("year", invoice.Year).
			Str("value", invoice.Value.String()).
			Msg("factura cerrada")
	}

	w.log.Info().
		Int("cards", len(cards)).
		Int("closed", closed).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("corrida de cierre de facturas finalizada")
}
