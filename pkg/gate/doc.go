// Package gate provides the four request-level permission guards: Add,
// View, Modify, Delete.
//
// A principal moves through a fixed ladder (unauthenticated, no group,
// inactive, active) and each guard returns a Decision that is either
// allowed or a denial with a human-readable message and a redirect to the
// caller's own landing area. Add and View are open to every active,
// grouped principal; Modify and Delete require membership in the single
// top-tier group.
//
//	g := gate.New("administrators",
//	    gate.WithLandingRoutes(map[string]string{
//	        "staff":    "/staff",
//	        "managers": "/managers",
//	    }, "/home"),
//	)
//
//	if d := g.CanDelete(principal); !d.Allowed {
//	    redirect(w, r, d.RedirectTo, d.Message)
//	    return
//	}
package gate
