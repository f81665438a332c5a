package api

import "campusguard/api/handlers"

type routeHandlers struct {
	reports *handlers.ReportsHandler
	health  *handlers.HealthHandler
}

func (s *Server) newRouteHandlers() routeHandlers {
	return routeHandlers{
		reports: handlers.NewReportsHandler(s.cfg, s.reports, s.notifier, s.logger),
		health:  handlers.NewHealthHandler(s.cfg, s.client, s.logger),
	}
}
