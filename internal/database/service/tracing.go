package service

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/EgehanKilicarslan/notekeeper/internal/database/service")
