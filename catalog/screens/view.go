package screens

import "comicapp/catalog/core"

// View is a screen state flattened for renderers that cannot switch on State.
type View struct {
	Route   string
	Status  Status
	Comics  []core.Comic
	Comic   *core.Comic
	Message string
}

func listView(route string, s State[[]core.Comic]) View {
	v := View{Route: route, Status: s.Status()}
	switch st := s.(type) {
	case Success[[]core.Comic]:
		v.Comics = st.Data
	case Failure[[]core.Comic]:
		v.Message = st.Message
	case Loading[[]core.Comic]:
	}
	return v
}

func detailsView(route string, s State[core.Comic]) View {
	v := View{Route: route, Status: s.Status()}
	switch st := s.(type) {
	case Success[core.Comic]:
		c := st.Data
		v.Comic = &c
	case Failure[core.Comic]:
		v.Message = st.Message
	case Loading[core.Comic]:
	}
	return v
}
