package namespace_test

import (
	"context"
	"teamboard/domain"
	"teamboard/persistence"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func typesID(i int) types.ID {
	return types.ID(i)
}

func workspace() *persistence.Workspace {
	w, err := persistence.LoadWorkspace(context.Background())
	ExpectWithOffset(1, err).To(BeNil())
	return w
}

func saveWorkspace(w *persistence.Workspace) {
	ExpectWithOffset(1, w.Save(context.Background())).To(Succeed())
}

func rowsOf(members []domain.Member, userID types.ID) []domain.Member {
	r := []domain.Member{}
	for _, m := range members {
		if m.UserID == userID {
			r = append(r, m)
		}
	}
	return r
}
