package user

import "github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
