// Package pineconefx wires a Pinecone provider into an Fx application.
package pineconefx

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/lizzyg/pinecone"
)

// FXModule provides a *pinecone.Provider built from the pinecone.yaml
// configuration and the PINECONE__ environment overrides.
//
// Usage:
//
//	app := fx.New(
//	    pineconefx.FXModule,
//	    fx.Provide(func() *slog.Logger { return slog.Default() }),
//	    fx.Invoke(func(p *pinecone.Provider) { ... }),
//	)
//
// A *slog.Logger and a prometheus.Registerer are used when present in the
// container.
var FXModule = fx.Module("pinecone",
	fx.Provide(NewProvider),
)

// Params are the optional dependencies of NewProvider.
type Params struct {
	fx.In

	Logger     *slog.Logger          `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// NewProvider loads the configuration file and builds the provider.
func NewProvider(p Params) (*pinecone.Provider, error) {
	var opts []pinecone.Option
	if p.Logger != nil {
		opts = append(opts, pinecone.WithLogger(p.Logger))
	}
	if p.Registerer != nil {
		opts = append(opts, pinecone.WithMetrics(p.Registerer))
	}
	return pinecone.NewFromFile(opts...)
}
