package system_healthcheck

import (
	"picktask-backend/internal/cache"
)

var healthcheckService = &HealthcheckService{
	cache.GetClient(),
}
var healthcheckController = &HealthcheckController{
	healthcheckService,
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
