package notifications

import (
	"bytes"
	"html/template"

	"github.com/khudyi/premium-steli/internal/submissions"
)

const submissionNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>Нова заявка на консультацію</h3>
  <p><strong>Ім'я:</strong> {{.Name}}</p>
  <p><strong>Телефон:</strong> {{.Phone}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Отримано:</strong> {{.Timestamp.Format "02.01.2006 15:04"}}</p>
  <p><strong>Деталі проєкту:</strong><br/>{{.ProjectDetails}}</p>
</body>
</html>`

var submissionNotificationTmpl = template.Must(template.New("submission_notification").Parse(submissionNotificationTemplate))

func buildSubmissionNotificationHTML(item submissions.Submission) (string, error) {
	var buf bytes.Buffer
	if err := submissionNotificationTmpl.Execute(&buf, item); err != nil {
		return "", err
	}
	return buf.String(), nil
}
