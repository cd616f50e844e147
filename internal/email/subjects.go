package email

const (
	subjectBookingConfirmation    = "Your broadband visit is booked"
	subjectAppointmentReminderFmt = "Reminder: your broadband visit on %s"
)
