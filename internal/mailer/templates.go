package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

var twoFactorTemplate = template.Must(template.New("two_factor").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<title>Código de Verificación para Inicio de Sesión</title>
</head>
<body style="font-family:'Roboto',sans-serif;background-color:#f4f4f4;margin:0;padding:0;">
<div style="max-width:600px;margin:20px auto;background-color:#ffffff;border-radius:10px;border:1px solid #ccc;">
  <div style="background-color:#003366;color:#ffffff;padding:25px;text-align:center;font-size:22px;font-weight:bold;">
    Verificación de Seguridad
  </div>
  <div style="padding:40px;color:#333333;font-size:16px;line-height:1.8;">
    <p>Hola <strong>{{.Handle}}</strong>,</p>
    <p>Hemos recibido una solicitud de inicio de sesión para tu usuario.</p>
    <p>Para completar el inicio de sesión, usa el siguiente código de verificación:</p>
    <div style="background-color:#808080;color:#ffffff;font-size:30px;font-weight:bold;text-align:center;padding:20px;margin:30px 0;border-radius:8px;letter-spacing:4px;border:2px solid #003366;">
      {{.Code}}
    </div>
    <p>Este código es válido por <strong>{{.Minutes}} minutos</strong>.</p>
    <p>Por seguridad, no compartas este código con nadie.</p>
    <p>Si no solicitaste este código, ignora este mensaje.</p>
    <p>Saludos<br>
    Parque Industrial SanJose</p>
  </div>
  <div style="background-color:#f0f0f0;color:#555555;padding:20px;text-align:center;font-size:13px;border-top:1px solid #ccc;">
    <p>Este es un correo automatizado, no respondas.</p>
  </div>
</div>
</body>
</html>`))

var contactTemplate = template.Must(template.New("contact").Parse(`<h1>Formulario de Usuarios</h1>
<p>Has recibido un nuevo mensaje de contacto:</p>
<ul>
  <li><strong>Nombre:</strong> {{.Name}}</li>
  <li><strong>Email:</strong> {{.Email}}</li>
</ul>
<h2>Mensaje:</h2>
<p>{{.Message}}</p>`))

func renderTwoFactorBody(handle, code string, minutes int) (string, error) {
	var b strings.Builder
	err := twoFactorTemplate.Execute(&b, struct {
		Handle, Code string
		Minutes      int
	}{handle, code, minutes})
	if err != nil {
		return "", fmt.Errorf("render 2fa email: %w", err)
	}
	return b.String(), nil
}

func renderContactBody(name, email, message string) (string, error) {
	var b strings.Builder
	err := contactTemplate.Execute(&b, struct {
		Name, Email, Message string
	}{name, email, message})
	if err != nil {
		return "", fmt.Errorf("render contact email: %w", err)
	}
	return b.String(), nil
}
