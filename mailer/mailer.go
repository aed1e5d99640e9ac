package mailer

import (
	"fmt"
	"log"

	"gatepass-app/config"
	"gatepass-app/models"
	"gatepass-app/utils"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// NotifyGatePassCreated emails the destination contact about a freshly
// issued gate pass. Failures are logged, never surfaced: mail is a
// courtesy, not part of the creation contract.
func NotifyGatePassCreated(db *gorm.DB, toEmail string, header models.GatePassHeader) {
	if !config.MailEnabled || toEmail == "" {
		return
	}

	subject := "Gate Pass " + header.GatepassNo
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>New gate pass issued</h3>
				<p>Gate Pass No: <strong>%s</strong></p>
				<p>Destination: %s</p>
				<p>Carried By: %s</p>
				<p>Items: %d</p>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, header.GatepassNo, header.Destination, header.CarriedBy, len(header.Items))

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPUser)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Println("Failed to send gate pass mail:", header.GatepassNo, err)
		utils.InsertLog(db, models.IntegrationLog{
			SourceSystem: "GATEPASS",
			ProcessName:  "MAIL_NOTIFY",
			RecordKey:    header.GatepassNo,
			LogLevel:     "ERROR",
			Message:      err.Error(),
		})
		return
	}

	log.Println("Gate pass mail sent:", header.GatepassNo, "->", toEmail)
}
