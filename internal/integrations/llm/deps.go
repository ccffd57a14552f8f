package llm

import (
	"callclassifier/internal/config"
	"callclassifier/internal/httpx"
)

type Config = config.Config

var externalHTTPClient = httpx.ExternalHTTPClient()
