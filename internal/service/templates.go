// internal/service/templates.go
package service

// Presentation markup for the four campaign emails. Body templates are
// dropped into {body} of the shared layout.

const emailLayout = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f5f7;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;">
    <div style="background:#1a2b4a;padding:24px;text-align:center;">
      <span style="color:#fbbf24;font-size:24px;font-weight:bold;">Elec-Mate</span>
    </div>
    <div style="padding:32px 24px;color:#333333;font-size:16px;line-height:1.6;">
{body}
    </div>
    <div style="padding:16px 24px;background:#f4f5f7;color:#888888;font-size:12px;text-align:center;">
      &copy; {year} Elec-Mate. Tools and training for UK electricians.
    </div>
  </div>
</body>
</html>`

const featureSpotlightBody = `      <p>Hi {first_name},</p>
      <p>One tool our electricians keep coming back to is the <strong>{feature_name}</strong>.</p>
      <p>{blurb}</p>
      <p style="text-align:center;margin:28px 0;">
        <a href="https://elec-mate.com/tools" style="background:#fbbf24;color:#1a2b4a;padding:12px 28px;border-radius:6px;text-decoration:none;font-weight:bold;">Open it now</a>
      </p>
      <p>The Elec-Mate team</p>`

const newContentBody = `      <p>Hi {first_name},</p>
      <p>We've just published <strong>{title}</strong>.</p>
      <p>{description}</p>
      <p style="text-align:center;margin:28px 0;">
        <a href="https://elec-mate.com/courses" style="background:#fbbf24;color:#1a2b4a;padding:12px 28px;border-radius:6px;text-decoration:none;font-weight:bold;">Start learning</a>
      </p>
      <p>The Elec-Mate team</p>`

const engagementNudgeBody = `      <p>Hi {first_name},</p>
      <p>It's been a little while since you last signed in. Your calculators, certificates and course progress are all exactly where you left them.</p>
      <p>Ten minutes of practice questions a day adds up fast before an exam.</p>
      <p style="text-align:center;margin:28px 0;">
        <a href="https://elec-mate.com/dashboard" style="background:#fbbf24;color:#1a2b4a;padding:12px 28px;border-radius:6px;text-decoration:none;font-weight:bold;">Jump back in</a>
      </p>
      <p>The Elec-Mate team</p>`

const trialWinbackBody = `      <p>Hi {first_name},</p>
      <p>Your 7-day Elec-Mate trial has come to an end, but your account and progress are still safe.</p>
      <p>Upgrade today and keep full access to the calculators, certificate generators and the apprentice course library.</p>
      <p style="text-align:center;margin:28px 0;">
        <a href="https://elec-mate.com/upgrade" style="background:#fbbf24;color:#1a2b4a;padding:12px 28px;border-radius:6px;text-decoration:none;font-weight:bold;">Upgrade my account</a>
      </p>
      <p>The Elec-Mate team</p>`
