package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/autospa/autospa-api/pkg/printer"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/google/uuid"
)

// PrinterService formats receipts for submitted bills and sends them to the
// counter's thermal printer.
type PrinterService struct {
	printer  printer.Printer
	billRepo repository.BillRepository
	userRepo repository.UserRepository
	settings *SettingsService
	width    int
	loc      *time.Location
}

// NewPrinterService creates a new printer service. width is the paper width
// in characters.
func NewPrinterService(
	p printer.Printer,
	billRepo repository.BillRepository,
	userRepo repository.UserRepository,
	settings *SettingsService,
	width int,
	loc *time.Location,
) *PrinterService {
	if loc == nil {
		loc = time.Local
	}
	return &PrinterService{
		printer:  p,
		billRepo: billRepo,
		userRepo: userRepo,
		settings: settings,
		width:    width,
		loc:      loc,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// PrintResult carries the receipt that was (or would have been) printed.
// Printed is false when no printer is configured.
type PrintResult struct {
	Receipt *entity.Receipt `json:"receipt"`
	Printed bool            `json:"printed"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.configured(),
		Connected:  s.printer.Ready(ctx),
		Type:       s.printer.Kind(),
		Width:      s.width,
	}
}

func (s *PrinterService) configured() bool {
	return s.printer.Kind() != printer.KindNone
}

// TestPrint sends a sample receipt using the shop header.
func (s *PrinterService) TestPrint(ctx context.Context) (*PrintResult, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	receipt := &entity.Receipt{
		Header:        receiptHeader(settings),
		BillNo:        "TEST-001",
		Date:          time.Now().In(s.loc).Format("02/01/2006 15:04"),
		Cashier:       "System",
		VehicleNumber: "TEST 0000",
		PaymentMethod: "cash",
		Items: []entity.ReceiptItem{
			{Name: "Foam wash", Quantity: 1, UnitPrice: 30000, Total: 30000},
			{Name: "Air freshener", Quantity: 2, UnitPrice: 12500, Total: 25000},
		},
		SubTotal: 55000,
		Total:    55000,
		Currency: settings.CurrencySymbol,
		Footer:   "Printer test",
	}
	return s.print(ctx, receipt, "test page")
}

// PrintBill prints the receipt of a submitted bill.
func (s *PrinterService) PrintBill(ctx context.Context, billID uuid.UUID) (*PrintResult, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	cashier := ""
	if user, err := s.userRepo.GetByID(ctx, bill.CreatedBy); err == nil && user != nil {
		cashier = user.FullName()
	}

	receipt := BuildReceipt(bill, settings, cashier, s.loc)
	return s.print(ctx, receipt, "bill "+receipt.BillNo)
}

func (s *PrinterService) print(ctx context.Context, receipt *entity.Receipt, what string) (*PrintResult, error) {
	result := &PrintResult{Receipt: receipt}
	if !s.configured() {
		return result, nil
	}
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		log.Printf("[printer] print %s failed: %v", what, err)
		return result, apperror.ErrPrinterUnavailable
	}
	result.Printed = true
	return result, nil
}

func receiptHeader(settings *entity.ShopSettings) entity.ReceiptHeader {
	return entity.ReceiptHeader{
		StoreName: settings.StoreName,
		Address:   settings.Address,
		Phone:     settings.Phone,
		TaxID:     settings.TaxID,
	}
}

// BuildReceipt composes the printable receipt of a stored bill
func BuildReceipt(bill *entity.Bill, settings *entity.ShopSettings, cashier string, loc *time.Location) *entity.Receipt {
	postItem := billing.Money(bill.SubTotal - bill.ItemDiscountTotal)
	receipt := &entity.Receipt{
		Header:          receiptHeader(settings),
		BillNo:          utils.BillNumber(bill.ID),
		Date:            bill.BilledAt.In(loc).Format("02/01/2006 15:04"),
		Cashier:         cashier,
		Customer:        bill.CustomerName,
		VehicleNumber:   bill.VehicleNumber,
		PaymentMethod:   bill.PaymentMethod,
		Items:           make([]entity.ReceiptItem, 0, len(bill.Items)),
		SubTotal:        billing.Money(bill.SubTotal),
		ItemDiscount:    billing.Money(bill.ItemDiscountTotal),
		OverallDiscount: billing.Percent(bill.OverallDiscount),
		OverallAmount:   postItem - billing.Money(bill.Total),
		Total:           billing.Money(bill.Total),
		Currency:        settings.CurrencySymbol,
		Footer:          settings.ReceiptFooter,
		Void:            bill.IsVoid(),
	}
	for _, item := range bill.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: billing.Money(item.UnitPrice),
			Discount:  billing.Percent(item.Discount),
			Total:     billing.Money(item.LineTotal),
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)
	money := func(m billing.Money) string {
		if r.Currency == "" {
			return m.String()
		}
		return r.Currency + " " + m.String()
	}

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.TextF("Ph: %s", r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("GSTIN: %s", r.Header.TaxID)
	}
	if r.Void {
		doc.SetBold(true).Text("*** VOID ***").SetBold(false)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Bill No:", r.BillNo).
		KeyValue("Date:", r.Date).
		KeyValue("Vehicle:", r.VehicleNumber)
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", strings.ToUpper(r.PaymentMethod))
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Name, item.Total.String())
		detail := fmt.Sprintf("  %d x %s", item.Quantity, item.UnitPrice)
		if item.Discount > 0 {
			detail += fmt.Sprintf(" less %s", item.Discount)
		}
		if item.Quantity > 1 || item.Discount > 0 {
			doc.Text(detail)
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", money(r.SubTotal))
	if r.ItemDiscount > 0 {
		doc.KeyValue("Item discounts:", "-"+money(r.ItemDiscount))
	}
	if r.OverallDiscount > 0 {
		doc.KeyValue(fmt.Sprintf("Discount %s:", r.OverallDiscount), "-"+money(r.OverallAmount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", money(r.Total)).
		SetBold(false)

	doc.Separator('-')

	footer := r.Footer
	if footer == "" {
		footer = "Thank you! Visit again."
	}
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(footer).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
