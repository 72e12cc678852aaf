package mapping

import (
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/SscSPs/marketplace_ledger/internal/models"
)

// ToModelSalesOrder converts a domain SalesOrder to a model SalesOrder
func ToModelSalesOrder(d domain.SalesOrder) models.SalesOrder {
	items := make([]models.SalesOrderItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.SalesOrderItem(it)
	}
	return models.SalesOrder{
		SalesOrderID: d.ID,
		TenantID:     d.TenantID,
		JournalID:    d.JournalID,
		ReferenceID:  d.ReferenceID,
		Items:        items,
		Subtotal:     d.Subtotal,
		Discount:     d.Discount,
		Tax:          d.Tax,
		Total:        d.Total,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainSalesOrder converts a model SalesOrder to a domain SalesOrder
func ToDomainSalesOrder(m models.SalesOrder) domain.SalesOrder {
	items := make([]domain.RetailItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = domain.RetailItem(it)
	}
	return domain.SalesOrder{
		OperationalRecord: domain.OperationalRecord{
			ID:        m.SalesOrderID,
			TenantID:  m.TenantID,
			Channel:   domain.ChannelRetail,
			JournalID: m.JournalID,
			CreatedAt: m.CreatedAt,
		},
		ReferenceID: m.ReferenceID,
		Items:       items,
		Subtotal:    m.Subtotal,
		Discount:    m.Discount,
		Tax:         m.Tax,
		Total:       m.Total,
	}
}

// ToModelPpobPurchase converts a domain PpobPurchase to a model PpobPurchase
func ToModelPpobPurchase(d domain.PpobPurchase) models.PpobPurchase {
	return models.PpobPurchase{
		PurchaseID:  d.ID,
		TenantID:    d.TenantID,
		JournalID:   d.JournalID,
		ReferenceID: d.ReferenceID,
		ProductCode: d.ProductCode,
		CustomerNo:  d.CustomerNo,
		BasePrice:   d.BasePrice,
		AdminFee:    d.AdminFee,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainPpobPurchase converts a model PpobPurchase to a domain PpobPurchase
func ToDomainPpobPurchase(m models.PpobPurchase) domain.PpobPurchase {
	return domain.PpobPurchase{
		OperationalRecord: domain.OperationalRecord{
			ID:        m.PurchaseID,
			TenantID:  m.TenantID,
			Channel:   domain.ChannelPpob,
			JournalID: m.JournalID,
			CreatedAt: m.CreatedAt,
		},
		ReferenceID: m.ReferenceID,
		ProductCode: m.ProductCode,
		CustomerNo:  m.CustomerNo,
		BasePrice:   m.BasePrice,
		AdminFee:    m.AdminFee,
	}
}
