package bookings

import (
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// Тексты уведомлений клиентам

func startedText(b *domain.Booking) string {
	return fmt.Sprintf("🚿 Ваша мийка #%d (авто %s) розпочалась.", b.ID, b.CarNumber)
}

func finishedText(b *domain.Booking) string {
	return fmt.Sprintf("✅ Ваша мийка #%d (авто %s) завершена. Дякуємо, що обрали нас!", b.ID, b.CarNumber)
}

func rescheduledText(b *domain.Booking, datetimeChanged, statusChanged bool) string {
	text := fmt.Sprintf("🔔 Ваше замовлення #%d було змінено.", b.ID)
	if datetimeChanged {
		text += fmt.Sprintf("\n📅 Нова дата/час: %s", b.BookingDatetime.Format(domain.DisplayDateTimeFormat))
	}
	if statusChanged {
		text += fmt.Sprintf("\n📌 Новий статус: %s", b.Status)
	}
	return text
}

func deletedText(b *domain.Booking) string {
	return fmt.Sprintf("❌ Ваше бронювання 🚗 %s було скасовано адміністратором.", b.CarNumber)
}
