package service

import (
	"crypto/rand"
	"math/big"

	"github.com/labstack/gommon/random"
	"github.com/opsdeskhq/opsdesk/lib/tracker"
	"github.com/opsdeskhq/opsdesk/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

const alphaNumBytes = random.Alphanumeric

type OpsdeskService struct {
	Config        *Config
	DB            *bun.DB
	Logger        *lecho.Logger
	TimerStore    *tracker.Store
	InvoiceEvents rabbitmq.Client
}

func randBytesFromStr(length int, from string) ([]byte, error) {
	b := make([]byte, length)
	fromLenBigInt := big.NewInt(int64(len(from)))
	for i := range b {
		r, err := rand.Int(rand.Reader, fromLenBigInt)
		if err != nil {
			return nil, err
		}
		b[i] = from[r.Int64()]
	}
	return b, nil
}
