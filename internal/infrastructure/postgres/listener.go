package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/facturas-pro/pkg/logger"
)

// CanalFacturas es el canal NOTIFY que disparan los triggers de la tabla
// facturas (migración 002). El payload es el JSON {id, evento}.
const CanalFacturas = "facturas_cambios"

// Listener mantiene una conexión dedicada en LISTEN y reparte cada
// notificación a los suscriptores (el endpoint SSE del panel).
//
// Un suscriptor lento pierde notificaciones en vez de frenar al resto: el
// panel recarga el listado ante cualquier evento, así que perder uno
// intermedio no deja datos desactualizados.
type Listener struct {
	pool *pgxpool.Pool
	log  *logger.Logger

	mu   sync.Mutex
	subs map[chan string]struct{}
}

// NewListener construye el listener sobre el pool.
func NewListener(pool *pgxpool.Pool, log *logger.Logger) *Listener {
	if log == nil {
		log = logger.Nop()
	}
	return &Listener{
		pool: pool,
		log:  log.Modulo("listener"),
		subs: make(map[chan string]struct{}),
	}
}

// Suscribir registra un suscriptor. El cancel devuelto lo retira y cierra el canal.
func (l *Listener) Suscribir() (<-chan string, func()) {
	ch := make(chan string, 8)
	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		if _, ok := l.subs[ch]; ok {
			delete(l.subs, ch)
			close(ch)
		}
		l.mu.Unlock()
	}
	return ch, cancel
}

// Escuchar bloquea repartiendo notificaciones hasta que el contexto se cancele.
// Si la conexión se cae, reintenta con una pausa; los suscriptores no se enteran.
func (l *Listener) Escuchar(ctx context.Context) error {
	for {
		if err := l.escucharUnaConexion(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.log.Warn().Err(err).Msg("conexión LISTEN perdida, reintentando")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
}

func (l *Listener) escucharUnaConexion(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+CanalFacturas); err != nil {
		return err
	}
	l.log.Info().Str("canal", CanalFacturas).Msg("escuchando cambios de facturas")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.difundir(n.Payload)
	}
}

func (l *Listener) difundir(payload string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ch := range l.subs {
		select {
		case ch <- payload:
		default: // suscriptor saturado: descartar
		}
	}
}
