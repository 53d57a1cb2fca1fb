package dashboard_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	requestDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/request"
	"github.com/frahmantamala/budget-allocation/internal/dashboard"
)

var _ = Describe("RequestFeed", func() {
	It("tracks refreshed rows and counts pending ones", func() {
		feed := &dashboard.RequestFeed{}

		merged := feed.Refresh([]requestDatamodel.Request{
			{ID: 1, Status: requestDatamodel.StatusPending},
			{ID: 2, Status: requestDatamodel.StatusApproved},
		})
		Expect(merged).To(HaveLen(2))
		Expect(feed.Pending()).To(Equal(1))
	})

	It("never reverts a reviewed request when a stale refresh arrives", func() {
		feed := &dashboard.RequestFeed{}
		feed.Refresh([]requestDatamodel.Request{
			{ID: 1, Status: requestDatamodel.StatusApproved},
			{ID: 2, Status: requestDatamodel.StatusPending},
		})

		merged := feed.Refresh([]requestDatamodel.Request{
			{ID: 1, Status: requestDatamodel.StatusPending},
			{ID: 2, Status: requestDatamodel.StatusRejected},
			{ID: 3, Status: requestDatamodel.StatusPending},
		})

		Expect(merged[0].Status).To(Equal(requestDatamodel.StatusApproved))
		Expect(merged[1].Status).To(Equal(requestDatamodel.StatusRejected))
		Expect(merged[2].ID).To(Equal(int64(3)))
		Expect(feed.Pending()).To(Equal(1))
	})

	It("snapshots are copies, not views of the tracked list", func() {
		feed := &dashboard.RequestFeed{}
		feed.Refresh([]requestDatamodel.Request{{ID: 1, Status: requestDatamodel.StatusPending}})

		snap := feed.Snapshot()
		snap[0].Status = requestDatamodel.StatusApproved

		Expect(feed.Pending()).To(Equal(1))
	})
})
