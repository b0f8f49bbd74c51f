package cmd

import (
	"go.uber.org/dig"

	"github.com/CongL3/MobileDependecyManager/application"
	"github.com/CongL3/MobileDependecyManager/infrastructure/provider"
)

// buildContainer wires the constructor graph with DIG.
func buildContainer() *dig.Container {
	container := dig.New()

	constructors := []any{
		provider.NewRegistryFactory,
		application.NewCheckService,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			panic(err)
		}
	}

	return container
}

// injectCheckService resolves the check service from the container.
func injectCheckService() *application.CheckService {
	var service *application.CheckService
	if err := buildContainer().Invoke(func(s *application.CheckService) {
		service = s
	}); err != nil {
		panic(err)
	}
	return service
}
